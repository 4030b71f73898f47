package services

import (
	"fmt"

	"freeboard/internal/models"

	"github.com/google/uuid"
)

// HistoryStore is append-and-list only. No update or delete exists: the
// history log is the audit trail and stays tamper-evident by construction.
type HistoryStore interface {
	Append(ev *models.HistoryEvent) error
	ListByArticle(articleID uint) ([]models.HistoryEvent, error)
}

type HistoryService struct {
	history HistoryStore
}

func NewHistoryService(history HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

// Append records one state transition of an article with the acting writer
// snapshot. Prior entries are never touched.
func (s *HistoryService) Append(articleID uint, eventType string, w models.Writer) error {
	ev := &models.HistoryEvent{
		Hid:        uuid.NewString(),
		ArticleID:  articleID,
		Type:       eventType,
		WriterID:   w.UserID,
		WriterName: w.Username,
		WriterRole: w.Role,
	}
	if err := s.history.Append(ev); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// List returns the article's log in transition order.
func (s *HistoryService) List(articleID uint) ([]models.HistoryEvent, error) {
	return s.history.ListByArticle(articleID)
}
