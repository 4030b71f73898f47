package db

import (
	"errors"
	"fmt"

	"freeboard/internal/models"
	"freeboard/internal/services"

	"gorm.io/gorm"
)

// ArticleStore is the gorm-backed implementation of services.ArticleStore.
type ArticleStore struct{}

func NewArticleStore() *ArticleStore { return &ArticleStore{} }

// NextSeq bumps the board's counter row and returns the new value in one
// statement, so concurrent creates can never draw the same number.
func (s *ArticleStore) NextSeq(board string) (int, error) {
	var value int
	err := DB.Raw(
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`,
		"board:"+board,
	).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	return value, nil
}

func (s *ArticleStore) Create(a *models.Article) error {
	return DB.Create(a).Error
}

func (s *ArticleStore) FindBySeq(board string, seq int) (*models.Article, error) {
	var article models.Article
	err := DB.Where("board = ? AND seq = ?", board, seq).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) FindByID(id uint) (*models.Article, error) {
	var article models.Article
	err := DB.First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Save writes the article guarded by its version column. A concurrent writer
// that got there first leaves RowsAffected at zero, reported as ErrConflict.
func (s *ArticleStore) Save(a *models.Article) error {
	current := a.Version
	result := DB.Model(&models.Article{}).
		Where("id = ? AND version = ?", a.ID, current).
		Select("category", "subject", "content", "writer_id", "writer_name", "writer_role", "noticed", "deleted", "version").
		Updates(map[string]interface{}{
			"category":    a.Category,
			"subject":     a.Subject,
			"content":     a.Content,
			"writer_id":   a.WriterID,
			"writer_name": a.WriterName,
			"writer_role": a.WriterRole,
			"noticed":     a.Noticed,
			"deleted":     a.Deleted,
			"version":     current + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrConflict
	}
	a.Version = current + 1
	return nil
}

func (s *ArticleStore) Delete(a *models.Article) error {
	return DB.Delete(&models.Article{}, a.ID).Error
}

func (s *ArticleStore) List(board string, page, size int) ([]models.Article, int64, error) {
	var total int64
	if err := DB.Model(&models.Article{}).Where("board = ?", board).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := DB.Where("board = ?", board).
		Order("seq DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (s *ArticleStore) ListNotices(board string) ([]models.Article, error) {
	var articles []models.Article
	err := DB.Where("board = ? AND noticed = ?", board, true).
		Order("seq DESC").
		Find(&articles).Error
	return articles, err
}

func (s *ArticleStore) IncrementViews(id uint) error {
	return DB.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CommentStore is the gorm-backed implementation of services.CommentStore.
type CommentStore struct{}

func NewCommentStore() *CommentStore { return &CommentStore{} }

func (s *CommentStore) Create(c *models.Comment) error {
	return DB.Create(c).Error
}

func (s *CommentStore) FindByCid(cid string) (*models.Comment, error) {
	var comment models.Comment
	err := DB.Where("cid = ?", cid).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentStore) ListByItem(articleID uint, seq int, page, size int) ([]models.Comment, error) {
	var comments []models.Comment
	err := DB.Where("article_id = ? AND article_seq = ?", articleID, seq).
		Order("id ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error
	return comments, err
}

func (s *CommentStore) CountByItem(articleID uint, seq int) (int64, error) {
	var count int64
	err := DB.Model(&models.Comment{}).
		Where("article_id = ? AND article_seq = ?", articleID, seq).
		Count(&count).Error
	return count, err
}

// FeelingStore is the gorm-backed implementation of services.FeelingStore.
type FeelingStore struct{}

func NewFeelingStore() *FeelingStore { return &FeelingStore{} }

// Insert relies on the composite unique indexes: the database rejects a
// second row for the same user and target, which comes back here as
// gorm.ErrDuplicatedKey thanks to TranslateError.
func (s *FeelingStore) Insert(f *models.Feeling) error {
	err := DB.Create(f).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrAlreadyExists
	}
	return err
}

func (s *FeelingStore) Counts(ref models.FeelingRef) (likes, dislikes int64, err error) {
	query := DB.Model(&models.Feeling{})
	if ref.ArticleID != nil {
		query = query.Where("article_id = ?", *ref.ArticleID)
	} else {
		query = query.Where("comment_id = ?", *ref.CommentID)
	}

	if err = query.Session(&gorm.Session{}).Where("kind = ?", models.FeelingKindLike).Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err = query.Session(&gorm.Session{}).Where("kind = ?", models.FeelingKindDislike).Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func (s *FeelingStore) FindByUser(ref models.FeelingRef, userID uint) (*models.Feeling, error) {
	query := DB.Where("user_id = ?", userID)
	if ref.ArticleID != nil {
		query = query.Where("article_id = ?", *ref.ArticleID)
	} else {
		query = query.Where("comment_id = ?", *ref.CommentID)
	}

	var feeling models.Feeling
	err := query.First(&feeling).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feeling, nil
}

// HistoryStore is the gorm-backed implementation of services.HistoryStore.
type HistoryStore struct{}

func NewHistoryStore() *HistoryStore { return &HistoryStore{} }

func (s *HistoryStore) Append(ev *models.HistoryEvent) error {
	return DB.Create(ev).Error
}

func (s *HistoryStore) ListByArticle(articleID uint) ([]models.HistoryEvent, error) {
	var events []models.HistoryEvent
	err := DB.Where("article_id = ?", articleID).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// GalleryStore is the gorm-backed implementation of services.GalleryStore.
type GalleryStore struct{}

func NewGalleryStore() *GalleryStore { return &GalleryStore{} }

func (s *GalleryStore) Create(g *models.Gallery) error {
	return DB.Create(g).Error
}

func (s *GalleryStore) FindByID(id string) (*models.Gallery, error) {
	var gallery models.Gallery
	err := DB.Where("id = ?", id).First(&gallery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &gallery, nil
}

func (s *GalleryStore) Save(g *models.Gallery) error {
	return DB.Save(g).Error
}

func (s *GalleryStore) Delete(id string) error {
	return DB.Delete(&models.Gallery{}, "id = ?", id).Error
}

func (s *GalleryStore) ListByOwner(linkedType string, linkedID uint) ([]models.Gallery, error) {
	var galleries []models.Gallery
	err := DB.Where("linked_type = ? AND linked_id = ?", linkedType, linkedID).
		Order("position ASC").
		Find(&galleries).Error
	return galleries, err
}

// UserStore resolves and persists accounts.
type UserStore struct{}

func NewUserStore() *UserStore { return &UserStore{} }

func (s *UserStore) Create(u *models.User) error {
	err := DB.Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrAlreadyExists
	}
	return err
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCategories returns the board's category codes in insertion order.
func ListCategories(board string) ([]models.BoardCategory, error) {
	var categories []models.BoardCategory
	err := DB.Where("board = ?", board).Order("id ASC").Find(&categories).Error
	return categories, err
}
