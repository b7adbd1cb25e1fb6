package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Index names of the documents mirrored from the primary store.
const (
	IndexCourses      = "courses"
	IndexLessons      = "lessons"
	IndexAchievements = "achievements"
	IndexCategories   = "categories"
	IndexUsers        = "users"
)

// Client is a thin wrapper over the official elasticsearch client,
// exposing only the document operations the mirror needs.
type Client struct {
	es *elasticsearch.Client
}

// NewClient ...
func NewClient(addr string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return nil, err
	}
	return &Client{es: es}, nil
}

func checkResponse(res *esapi.Response, err error) error {
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: %s", res.String())
	}
	return nil
}

// Index creates or replaces a document.
func (c *Client) Index(ctx context.Context, index, docID string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(index, bytes.NewReader(body),
		c.es.Index.WithDocumentID(docID),
		c.es.Index.WithContext(ctx),
	)
	return checkResponse(res, err)
}

// Update applies a partial document update.
func (c *Client) Update(ctx context.Context, index, docID string, fields map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{"doc": fields})
	if err != nil {
		return err
	}
	res, err := c.es.Update(index, docID, bytes.NewReader(body),
		c.es.Update.WithContext(ctx),
	)
	return checkResponse(res, err)
}

// UpdateScript runs a painless script against one document.
func (c *Client) UpdateScript(ctx context.Context, index, docID, script string, params map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"script": map[string]interface{}{
			"source": script,
			"lang":   "painless",
			"params": params,
		},
	})
	if err != nil {
		return err
	}
	res, err := c.es.Update(index, docID, bytes.NewReader(body),
		c.es.Update.WithContext(ctx),
	)
	return checkResponse(res, err)
}

// Delete removes a document. A missing document is not an error.
func (c *Client) Delete(ctx context.Context, index, docID string) error {
	res, err := c.es.Delete(index, docID,
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch: %s", res.String())
	}
	return nil
}

// UpdateByQuery runs a scripted update over every document matching the query.
func (c *Client) UpdateByQuery(ctx context.Context, index string, query, script map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":  query,
		"script": script,
	})
	if err != nil {
		return err
	}
	res, err := c.es.UpdateByQuery([]string{index},
		c.es.UpdateByQuery.WithBody(bytes.NewReader(body)),
		c.es.UpdateByQuery.WithContext(ctx),
	)
	return checkResponse(res, err)
}
