package services

import (
	"fmt"
	"log"

	"freeboard/internal/models"
	"freeboard/internal/utils"
)

type ArticleStore interface {
	// NextSeq atomically allocates the next sequence number for the board.
	// Values are monotonic and never reused.
	NextSeq(board string) (int, error)
	Create(a *models.Article) error
	// FindBySeq / FindByID return ErrNotFound when nothing resolves.
	FindBySeq(board string, seq int) (*models.Article, error)
	FindByID(id uint) (*models.Article, error)
	// Save writes the article only if its version is still current and bumps
	// it; a stale version returns ErrConflict.
	Save(a *models.Article) error
	Delete(a *models.Article) error
	List(board string, page, size int) ([]models.Article, int64, error)
	ListNotices(board string) ([]models.Article, error)
	IncrementViews(id uint) error
}

type CommentStore interface {
	Create(c *models.Comment) error
	FindByCid(cid string) (*models.Comment, error)
	ListByItem(articleID uint, seq int, page, size int) ([]models.Comment, error)
	CountByItem(articleID uint, seq int) (int64, error)
}

type DeleteMode string

const (
	// DeletePostOnly tombstones the article, preserving the comment thread.
	DeletePostOnly DeleteMode = "post-only"
	// DeleteFull removes the article entirely; allowed only with no comments.
	DeleteFull DeleteMode = "full"
)

type NoticeOp string

const (
	NoticeSet   NoticeOp = "set"
	NoticeClear NoticeOp = "clear"
)

// BoardService drives the article lifecycle: create, edit, two-phase delete
// and notice toggling, journaling every transition into the history log and
// reconciling gallery attachments on each save.
type BoardService struct {
	board     string
	articles  ArticleStore
	comments  CommentStore
	galleries *GalleryService
	history   *HistoryService
}

func NewBoardService(board string, articles ArticleStore, comments CommentStore, galleries *GalleryService, history *HistoryService) *BoardService {
	return &BoardService{
		board:     board,
		articles:  articles,
		comments:  comments,
		galleries: galleries,
		history:   history,
	}
}

// ArticleInput is the caller-supplied content of a create or edit.
type ArticleInput struct {
	Category   string   `json:"category"`
	Subject    string   `json:"subject"`
	Content    string   `json:"content"`
	GalleryIDs []string `json:"gallery_ids"`
	Device     string   `json:"-"`
}

// Create allocates the next board sequence, snapshots the writer, appends
// the created event and commits the submitted gallery references.
func (s *BoardService) Create(user *models.User, in ArticleInput) (*models.Article, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	seq, err := s.articles.NextSeq(s.board)
	if err != nil {
		return nil, fmt.Errorf("allocate sequence: %w", err)
	}

	writer := models.WriterOf(user)
	subject, content := in.Subject, in.Content
	article := &models.Article{
		Board:    s.board,
		Seq:      seq,
		Category: in.Category,
		Subject:  &subject,
		Content:  &content,
		Device:   in.Device,
		Version:  1,
	}
	article.SetWriter(&writer)

	if err := s.articles.Create(article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	if err := s.history.Append(article.ID, models.HistoryCreated, writer); err != nil {
		return nil, err
	}
	if _, err := s.galleries.ResolveAndAttach(in.GalleryIDs, models.GallerySourceArticle, article.ID, article.Seq); err != nil {
		return nil, err
	}

	log.Printf("new article created. seq=%d subject=%s", article.Seq, subject)
	return article, nil
}

// Edit rewrites the article's content. Ownership is re-validated at call
// time and the edited event carries the editor's identity. The sid names the
// editing session whose staged gallery removals are committed on success.
func (s *BoardService) Edit(user *models.User, sid string, seq int, in ArticleInput) (*models.Article, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return nil, err
	}
	writer := article.Writer()
	if writer == nil || writer.UserID != user.ID {
		return nil, ErrUnauthorized
	}

	editor := models.WriterOf(user)
	subject, content := in.Subject, in.Content
	article.Category = in.Category
	article.Subject = &subject
	article.Content = &content

	if err := s.articles.Save(article); err != nil {
		return nil, err
	}
	if err := s.history.Append(article.ID, models.HistoryEdited, editor); err != nil {
		return nil, err
	}
	if _, err := s.galleries.ResolveAndAttach(in.GalleryIDs, models.GallerySourceArticle, article.ID, article.Seq); err != nil {
		return nil, err
	}
	if sid != "" {
		if err := s.galleries.CommitRemovals(sid, models.GallerySourceArticle, article.ID); err != nil {
			return nil, err
		}
	}

	log.Printf("article edited. seq=%d subject=%s", article.Seq, subject)
	return article, nil
}

// Delete applies one of the two deletion modes. Post-only tombstones the
// article and is allowed only when comments exist (there is a thread to
// preserve); full removal is allowed only when none do (no comment may be
// left dangling).
func (s *BoardService) Delete(user *models.User, seq int, mode DeleteMode) error {
	if user == nil {
		return ErrUnauthorized
	}

	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return err
	}
	writer := article.Writer()
	if writer == nil || writer.UserID != user.ID {
		return ErrUnauthorized
	}

	count, err := s.comments.CountByItem(article.ID, article.Seq)
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	switch mode {
	case DeletePostOnly:
		if count < 1 {
			return fmt.Errorf("post-only delete with no comments: %w", ErrNotAcceptable)
		}
		acting := models.WriterOf(user)
		article.Subject = nil
		article.Content = nil
		article.SetWriter(nil)
		article.Deleted = true
		if err := s.articles.Save(article); err != nil {
			return err
		}
		if err := s.history.Append(article.ID, models.HistoryDeleted, acting); err != nil {
			return err
		}
		log.Printf("article deleted (post only). seq=%d", article.Seq)
		return nil

	case DeleteFull:
		if count > 0 {
			return fmt.Errorf("full delete with %d comments: %w", count, ErrNotAcceptable)
		}
		if err := s.articles.Delete(article); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		log.Printf("article deleted (full). seq=%d", article.Seq)
		return nil

	default:
		return fmt.Errorf("delete mode %q: %w", mode, ErrNotAcceptable)
	}
}

// SetNotice toggles the administrative notice flag. Setting an already-set
// flag (or clearing a cleared one) is rejected rather than absorbed, so the
// caller learns the toggle did nothing.
func (s *BoardService) SetNotice(user *models.User, seq int, op NoticeOp) error {
	if user == nil || !user.IsAdmin() {
		return ErrUnauthorized
	}

	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return err
	}

	var eventType string
	switch op {
	case NoticeSet:
		if article.Noticed {
			return fmt.Errorf("notice already set: %w", ErrNotAcceptable)
		}
		article.Noticed = true
		eventType = models.HistoryNoticeSet
	case NoticeClear:
		if !article.Noticed {
			return fmt.Errorf("notice not set: %w", ErrNotAcceptable)
		}
		article.Noticed = false
		eventType = models.HistoryNoticeCleared
	default:
		return fmt.Errorf("notice op %q: %w", op, ErrNotAcceptable)
	}

	if err := s.articles.Save(article); err != nil {
		return err
	}
	if err := s.history.Append(article.ID, eventType, models.WriterOf(user)); err != nil {
		return err
	}

	log.Printf("notice %s. seq=%d", op, article.Seq)
	return nil
}

// ArticleDetail is the read model of one article view.
type ArticleDetail struct {
	Article      models.Article   `json:"article"`
	Galleries    []models.Gallery `json:"galleries"`
	CommentCount int64            `json:"comment_count"`
}

// View resolves an article by sequence, optionally counting the view, and
// loads its attached galleries and comment count.
func (s *BoardService) View(seq int, countView bool) (*ArticleDetail, error) {
	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return nil, err
	}

	if countView {
		if err := s.articles.IncrementViews(article.ID); err != nil {
			return nil, fmt.Errorf("count view: %w", err)
		}
		article.Views++
	}

	galleries, err := s.galleries.ListByOwner(models.GallerySourceArticle, article.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.comments.CountByItem(article.ID, article.Seq)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return &ArticleDetail{Article: *article, Galleries: galleries, CommentCount: count}, nil
}

// List returns one page of the board plus the current notices.
func (s *BoardService) List(page, size int) (articles []models.Article, notices []models.Article, total int64, err error) {
	if page < 1 {
		page = 1
	}
	articles, total, err = s.articles.List(s.board, page, size)
	if err != nil {
		return nil, nil, 0, err
	}
	notices, err = s.articles.ListNotices(s.board)
	if err != nil {
		return nil, nil, 0, err
	}
	return articles, notices, total, nil
}

// WriteComment adds a comment to the article with the given sequence. The
// article must resolve (live or tombstoned); the comment records both its id
// and sequence.
func (s *BoardService) WriteComment(user *models.User, seq int, content string, galleryIDs []string) (*models.Comment, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		ArticleID:  article.ID,
		ArticleSeq: article.Seq,
		WriterID:   user.ID,
		WriterName: user.Username,
		WriterRole: user.Role,
		Content:    content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if _, err := s.galleries.ResolveAndAttach(galleryIDs, models.GallerySourceComment, comment.ID, article.Seq); err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments returns one page of an article's comments plus the total count.
func (s *BoardService) Comments(seq int, page, size int) ([]models.Comment, int64, error) {
	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return nil, 0, err
	}
	comments, err := s.comments.ListByItem(article.ID, article.Seq, page, size)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.comments.CountByItem(article.ID, article.Seq)
	if err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

// FindComment resolves one comment by its public id.
func (s *BoardService) FindComment(cid string) (*models.Comment, error) {
	return s.comments.FindByCid(cid)
}

// History returns the article's audit log in transition order.
func (s *BoardService) History(seq int) ([]models.HistoryEvent, error) {
	article, err := s.articles.FindBySeq(s.board, seq)
	if err != nil {
		return nil, err
	}
	return s.history.List(article.ID)
}
