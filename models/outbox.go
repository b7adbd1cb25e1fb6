package models

import (
	"encoding/json"
	"time"
)

// Outbox intents. Secondary-store updates (search mirror, notifications,
// mail) are enqueued in the same transaction as the primary write and
// processed asynchronously, so a secondary failure can never fail the
// request that triggered it.
type OutboxIntent string

const (
	IntentSearchIndex         OutboxIntent = "search.index"
	IntentSearchUpdate        OutboxIntent = "search.update"
	IntentSearchScript        OutboxIntent = "search.script"
	IntentSearchDelete        OutboxIntent = "search.delete"
	IntentSearchUpdateByQuery OutboxIntent = "search.update_by_query"
	IntentNotify              OutboxIntent = "notify"
	IntentMail                OutboxIntent = "mail"
)

const (
	OutboxPending = "pending"
	OutboxDone    = "done"
	OutboxFailed  = "failed"
)

type OutboxEntry struct {
	ID      uint         `json:"id" gorm:"primarykey"`
	Intent  OutboxIntent `json:"intent" gorm:"size:40;not null"`
	Index   string       `json:"index" gorm:"size:40"`
	DocID   string       `json:"doc_id" gorm:"size:64"`
	Payload []byte       `json:"payload"`

	Status        string    `json:"status" gorm:"size:10;default:'pending';index"`
	Attempts      int       `json:"attempts" gorm:"default:0"`
	NextAttemptAt time.Time `json:"next_attempt_at" gorm:"index"`
	LastError     string    `json:"last_error" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newOutbox(intent OutboxIntent, index, docID string, payload any) *OutboxEntry {
	body, _ := json.Marshal(payload)
	return &OutboxEntry{
		Intent:        intent,
		Index:         index,
		DocID:         docID,
		Payload:       body,
		Status:        OutboxPending,
		NextAttemptAt: time.Now(),
	}
}

func SearchIndexEntry(index, docID string, doc any) *OutboxEntry {
	return newOutbox(IntentSearchIndex, index, docID, doc)
}

func SearchUpdateEntry(index, docID string, partial map[string]any) *OutboxEntry {
	return newOutbox(IntentSearchUpdate, index, docID, partial)
}

func SearchScriptEntry(index, docID string, script map[string]any) *OutboxEntry {
	return newOutbox(IntentSearchScript, index, docID, script)
}

func SearchDeleteEntry(index, docID string) *OutboxEntry {
	return newOutbox(IntentSearchDelete, index, docID, nil)
}

func SearchUpdateByQueryEntry(index string, body map[string]any) *OutboxEntry {
	return newOutbox(IntentSearchUpdateByQuery, index, "", body)
}

func NotifyEntry(payload any) *OutboxEntry {
	return newOutbox(IntentNotify, "", "", payload)
}

func MailEntry(payload any) *OutboxEntry {
	return newOutbox(IntentMail, "", "", payload)
}

type PreRegistration struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
