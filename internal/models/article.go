package models

import (
	"time"
)

// BoardFree is the board namespace articles are sequenced in.
const BoardFree = "free"

type Article struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Board string `gorm:"size:20;not null;uniqueIndex:idx_board_seq" json:"board"`
	// Seq is assigned once from the board sequence and never reused.
	Seq        int     `gorm:"not null;uniqueIndex:idx_board_seq" json:"seq"`
	WriterID   *uint   `gorm:"index" json:"writer_id"`
	WriterName *string `json:"writer_name"`
	WriterRole *string `json:"writer_role"`
	Category   string  `gorm:"size:40;not null" json:"category"`
	Subject    *string `json:"subject"`
	Content    *string `gorm:"type:text" json:"content"`
	Views      int     `gorm:"default:0" json:"views"`
	Noticed    bool    `gorm:"default:false" json:"noticed"`
	Deleted    bool    `gorm:"default:false" json:"deleted"`
	Device     string  `gorm:"size:20" json:"device"`
	// Version guards mutating saves; a stale save loses and must be retried.
	Version   int       `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Writer returns the writer snapshot, or nil once the article is tombstoned.
func (a *Article) Writer() *Writer {
	if a.WriterID == nil {
		return nil
	}
	w := Writer{UserID: *a.WriterID}
	if a.WriterName != nil {
		w.Username = *a.WriterName
	}
	if a.WriterRole != nil {
		w.Role = *a.WriterRole
	}
	return &w
}

// SetWriter replaces the writer snapshot; nil clears it (tombstone).
func (a *Article) SetWriter(w *Writer) {
	if w == nil {
		a.WriterID = nil
		a.WriterName = nil
		a.WriterRole = nil
		return
	}
	id, name, role := w.UserID, w.Username, w.Role
	a.WriterID = &id
	a.WriterName = &name
	a.WriterRole = &role
}

func (a *Article) FeelingRef() FeelingRef {
	id := a.ID
	return FeelingRef{ArticleID: &id}
}

func (a *Article) TargetWriter() *Writer {
	return a.Writer()
}
