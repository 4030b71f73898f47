package models

import (
	"time"
)

type Comment struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Cid string `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	// Comments keep both the article id and its board sequence; they have no
	// existence independent of the article they point at.
	ArticleID  uint      `gorm:"not null;index" json:"article_id"`
	ArticleSeq int       `gorm:"not null" json:"article_seq"`
	WriterID   uint      `gorm:"not null;index" json:"writer_id"`
	WriterName string    `json:"writer_name"`
	WriterRole string    `json:"writer_role"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Comment) Writer() *Writer {
	return &Writer{UserID: c.WriterID, Username: c.WriterName, Role: c.WriterRole}
}

func (c *Comment) FeelingRef() FeelingRef {
	id := c.ID
	return FeelingRef{CommentID: &id}
}

func (c *Comment) TargetWriter() *Writer {
	return c.Writer()
}
