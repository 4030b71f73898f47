package models

import (
	"time"
)

// Gallery owner kinds.
const (
	GallerySourceArticle = "article"
	GallerySourceComment = "comment"
)

// Gallery is an uploaded image. Freshly uploaded it is unattached; once a
// save commits it, the back-pointer names the single article or comment that
// owns it.
type Gallery struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	UploaderID   uint   `gorm:"not null;index" json:"uploader_id"`
	UploaderName string `json:"uploader_name"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ContentType  string `gorm:"size:40" json:"content_type"`
	URL          string `json:"url"`
	// Back-pointer to the owning item, nil until committed.
	LinkedType *string   `gorm:"size:10;index:idx_gallery_owner" json:"linked_type"`
	LinkedID   *uint     `gorm:"index:idx_gallery_owner" json:"linked_id"`
	LinkedSeq  *int      `json:"linked_seq"`
	Position   int       `gorm:"default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// Attached reports whether the gallery is owned by an item.
func (g *Gallery) Attached() bool {
	return g.LinkedType != nil
}
