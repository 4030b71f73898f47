package services

import (
	"sort"
	"sync"

	"freeboard/internal/models"
)

// In-memory store fakes backing the service tests. They honor the same error
// contracts as the database-backed stores: ErrAlreadyExists on duplicate
// feelings, ErrConflict on stale article saves, ErrNotFound on misses.

type memArticleStore struct {
	mu       sync.Mutex
	nextID   uint
	seqs     map[string]int
	articles map[uint]models.Article
}

func newMemArticleStore() *memArticleStore {
	return &memArticleStore{
		seqs:     make(map[string]int),
		articles: make(map[uint]models.Article),
	}
}

func (s *memArticleStore) NextSeq(board string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[board]++
	return s.seqs[board], nil
}

func (s *memArticleStore) Create(a *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	s.articles[a.ID] = *a
	return nil
}

func (s *memArticleStore) FindBySeq(board string, seq int) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Board == board && a.Seq == seq {
			copy := a
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memArticleStore) FindByID(id uint) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := a
	return &copy, nil
}

func (s *memArticleStore) Save(a *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.articles[a.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != a.Version {
		return ErrConflict
	}
	a.Version++
	s.articles[a.ID] = *a
	return nil
}

func (s *memArticleStore) Delete(a *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.articles, a.ID)
	return nil
}

func (s *memArticleStore) List(board string, page, size int) ([]models.Article, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Article
	for _, a := range s.articles {
		if a.Board == board {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq > all[j].Seq })
	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *memArticleStore) ListNotices(board string) ([]models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var notices []models.Article
	for _, a := range s.articles {
		if a.Board == board && a.Noticed {
			notices = append(notices, a)
		}
	}
	sort.Slice(notices, func(i, j int) bool { return notices[i].Seq > notices[j].Seq })
	return notices, nil
}

func (s *memArticleStore) IncrementViews(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	a.Views++
	s.articles[id] = a
	return nil
}

type memCommentStore struct {
	mu       sync.Mutex
	nextID   uint
	comments []models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{}
}

func (s *memCommentStore) Create(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.comments = append(s.comments, *c)
	return nil
}

func (s *memCommentStore) FindByCid(cid string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.comments {
		if c.Cid == cid {
			copy := c
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCommentStore) ListByItem(articleID uint, seq int, page, size int) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Comment
	for _, c := range s.comments {
		if c.ArticleID == articleID && c.ArticleSeq == seq {
			matched = append(matched, c)
		}
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return nil, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (s *memCommentStore) CountByItem(articleID uint, seq int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, c := range s.comments {
		if c.ArticleID == articleID && c.ArticleSeq == seq {
			count++
		}
	}
	return count, nil
}

type memFeelingStore struct {
	mu       sync.Mutex
	nextID   uint
	feelings []models.Feeling
}

func newMemFeelingStore() *memFeelingStore {
	return &memFeelingStore{}
}

func sameTarget(f models.Feeling, ref models.FeelingRef) bool {
	if ref.ArticleID != nil {
		return f.ArticleID != nil && *f.ArticleID == *ref.ArticleID
	}
	return f.CommentID != nil && *f.CommentID == *ref.CommentID
}

func (s *memFeelingStore) Insert(f *models.Feeling) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := models.FeelingRef{ArticleID: f.ArticleID, CommentID: f.CommentID}
	for _, existing := range s.feelings {
		if existing.UserID == f.UserID && sameTarget(existing, ref) {
			return ErrAlreadyExists
		}
	}
	s.nextID++
	f.ID = s.nextID
	s.feelings = append(s.feelings, *f)
	return nil
}

func (s *memFeelingStore) Counts(ref models.FeelingRef) (likes, dislikes int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feelings {
		if !sameTarget(f, ref) {
			continue
		}
		if f.Kind == models.FeelingKindLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

func (s *memFeelingStore) FindByUser(ref models.FeelingRef, userID uint) (*models.Feeling, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feelings {
		if f.UserID == userID && sameTarget(f, ref) {
			copy := f
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

type memHistoryStore struct {
	mu     sync.Mutex
	nextID uint
	events []models.HistoryEvent
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{}
}

func (s *memHistoryStore) Append(ev *models.HistoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	ev.ID = s.nextID
	s.events = append(s.events, *ev)
	return nil
}

func (s *memHistoryStore) ListByArticle(articleID uint) ([]models.HistoryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.HistoryEvent
	for _, ev := range s.events {
		if ev.ArticleID == articleID {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

type memGalleryStore struct {
	mu        sync.Mutex
	galleries map[string]models.Gallery
}

func newMemGalleryStore() *memGalleryStore {
	return &memGalleryStore{galleries: make(map[string]models.Gallery)}
}

func (s *memGalleryStore) Create(g *models.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.galleries[g.ID] = *g
	return nil
}

func (s *memGalleryStore) FindByID(id string) (*models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.galleries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := g
	return &copy, nil
}

func (s *memGalleryStore) Save(g *models.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.galleries[g.ID]; !ok {
		return ErrNotFound
	}
	s.galleries[g.ID] = *g
	return nil
}

func (s *memGalleryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.galleries, id)
	return nil
}

func (s *memGalleryStore) ListByOwner(linkedType string, linkedID uint) ([]models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Gallery
	for _, g := range s.galleries {
		if g.LinkedType != nil && *g.LinkedType == linkedType && g.LinkedID != nil && *g.LinkedID == linkedID {
			matched = append(matched, g)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Position < matched[j].Position })
	return matched, nil
}
