package models

import (
	"time"
)

const (
	FeelingKindLike    = "like"
	FeelingKindDislike = "dislike"
)

// Feeling is one user's like or dislike on exactly one article or comment.
// The composite unique indexes make the insert the arbiter: a user who is
// already present in either set of a target cannot gain a second row, no
// matter how the requests interleave.
type Feeling struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Fid       string    `gorm:"uniqueIndex;size:36;not null" json:"fid"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_feeling_article;uniqueIndex:idx_feeling_comment" json:"user_id"`
	Username  string    `json:"username"`
	ArticleID *uint     `gorm:"uniqueIndex:idx_feeling_article" json:"article_id"`
	CommentID *uint     `gorm:"uniqueIndex:idx_feeling_comment" json:"comment_id"`
	Kind      string    `gorm:"size:10;not null" json:"kind"` // like or dislike
	CreatedAt time.Time `json:"created_at"`
}

// FeelingRef addresses the voter sets of one target: exactly one of the two
// ids is set.
type FeelingRef struct {
	ArticleID *uint
	CommentID *uint
}
