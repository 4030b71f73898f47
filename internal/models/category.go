package models

type BoardCategory struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Board string `gorm:"size:20;not null;uniqueIndex:idx_board_category" json:"board"`
	Code  string `gorm:"size:40;not null;uniqueIndex:idx_board_category" json:"code"`
	Name  string `json:"name"`
}
