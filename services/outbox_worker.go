package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduone-core/clients"
	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"go.uber.org/zap"
)

const outboxBatchSize = 50

// OutboxWorker drains pending side-effect intents: search mirror writes,
// notifications and mail. Each entry is retried with growing delays and
// parked as failed after the attempt budget runs out.
type OutboxWorker struct {
	outboxRepo  repositories.OutboxRepository
	searcher    *search.Client
	notifier    *clients.NotifierClient
	mailer      *clients.MailerClient
	interval    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// NewOutboxWorker ...
func NewOutboxWorker(
	outboxRepo repositories.OutboxRepository,
	searcher *search.Client,
	notifier *clients.NotifierClient,
	mailer *clients.MailerClient,
	interval time.Duration,
	maxAttempts int,
	logger *zap.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		outboxRepo:  outboxRepo,
		searcher:    searcher,
		notifier:    notifier,
		mailer:      mailer,
		interval:    interval,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Run processes batches until the context is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	entries, err := w.outboxRepo.FetchDue(outboxBatchSize)
	if err != nil {
		w.logger.Error("outbox fetch failed", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if err := w.dispatch(ctx, entry); err != nil {
			w.recordFailure(entry, err)
			continue
		}
		if err := w.outboxRepo.MarkDone(entry.ID); err != nil {
			w.logger.Error("outbox mark done failed", zap.Uint("entry_id", entry.ID), zap.Error(err))
		}
	}
}

func (w *OutboxWorker) dispatch(ctx context.Context, entry models.OutboxEntry) error {
	switch entry.Intent {
	case models.IntentSearchIndex:
		var doc map[string]any
		if err := json.Unmarshal(entry.Payload, &doc); err != nil {
			return err
		}
		return w.searcher.Index(ctx, entry.Index, entry.DocID, doc)

	case models.IntentSearchUpdate:
		var fields map[string]interface{}
		if err := json.Unmarshal(entry.Payload, &fields); err != nil {
			return err
		}
		return w.searcher.Update(ctx, entry.Index, entry.DocID, fields)

	case models.IntentSearchScript:
		var script struct {
			Source string                 `json:"source"`
			Params map[string]interface{} `json:"params"`
		}
		if err := json.Unmarshal(entry.Payload, &script); err != nil {
			return err
		}
		return w.searcher.UpdateScript(ctx, entry.Index, entry.DocID, script.Source, script.Params)

	case models.IntentSearchDelete:
		return w.searcher.Delete(ctx, entry.Index, entry.DocID)

	case models.IntentSearchUpdateByQuery:
		var body struct {
			Query  map[string]interface{} `json:"query"`
			Script map[string]interface{} `json:"script"`
		}
		if err := json.Unmarshal(entry.Payload, &body); err != nil {
			return err
		}
		return w.searcher.UpdateByQuery(ctx, entry.Index, body.Query, body.Script)

	case models.IntentNotify:
		var notification clients.Notification
		if err := json.Unmarshal(entry.Payload, &notification); err != nil {
			return err
		}
		return w.notifier.Send(ctx, notification)

	case models.IntentMail:
		var mail clients.Mail
		if err := json.Unmarshal(entry.Payload, &mail); err != nil {
			return err
		}
		return w.mailer.Send(ctx, mail)

	default:
		return fmt.Errorf("unknown outbox intent %q", entry.Intent)
	}
}

func (w *OutboxWorker) recordFailure(entry models.OutboxEntry, cause error) {
	attempts := entry.Attempts + 1
	if attempts >= w.maxAttempts {
		w.logger.Error("outbox entry exhausted retries",
			zap.Uint("entry_id", entry.ID),
			zap.String("intent", string(entry.Intent)),
			zap.Error(cause))
		if err := w.outboxRepo.MarkFailed(entry.ID, attempts, cause.Error()); err != nil {
			w.logger.Error("outbox mark failed errored", zap.Uint("entry_id", entry.ID), zap.Error(err))
		}
		return
	}

	// Linear backoff: attempt n waits n intervals.
	next := time.Now().Add(time.Duration(attempts) * w.interval)
	w.logger.Warn("outbox entry will retry",
		zap.Uint("entry_id", entry.ID),
		zap.String("intent", string(entry.Intent)),
		zap.Int("attempts", attempts),
		zap.Error(cause))
	if err := w.outboxRepo.MarkRetry(entry.ID, attempts, next, cause.Error()); err != nil {
		w.logger.Error("outbox mark retry errored", zap.Uint("entry_id", entry.ID), zap.Error(err))
	}
}
