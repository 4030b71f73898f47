package models

import (
	"time"
)

// History event types, in the order state transitions produce them.
const (
	HistoryCreated       = "created"
	HistoryEdited        = "edited"
	HistoryDeleted       = "deleted"
	HistoryNoticeSet     = "notice-set"
	HistoryNoticeCleared = "notice-cleared"
)

// HistoryEvent is one entry of an article's append-only audit log. Rows are
// never updated or removed; insertion order is transition order.
type HistoryEvent struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Hid        string    `gorm:"uniqueIndex;size:36;not null" json:"hid"`
	ArticleID  uint      `gorm:"not null;index" json:"article_id"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	WriterID   uint      `gorm:"not null" json:"writer_id"`
	WriterName string    `json:"writer_name"`
	WriterRole string    `json:"writer_role"`
	CreatedAt  time.Time `json:"created_at"`
}
