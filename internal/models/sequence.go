package models

// Sequence hands out per-board article numbers. Values only ever grow, so a
// fully deleted article's seq is never handed out again.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:20" json:"name"`
	Value int    `gorm:"not null;default:0" json:"value"`
}
