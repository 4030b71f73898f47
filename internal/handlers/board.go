package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"freeboard/internal/db"
	"freeboard/internal/middleware"
	"freeboard/internal/models"
	"freeboard/internal/services"
	"freeboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	board    *services.BoardService
	feelings *services.FeelingService
}

func NewBoardHandler() *BoardHandler {
	galleries := services.NewGalleryService(db.NewGalleryStore(), services.Staging())
	history := services.NewHistoryService(db.NewHistoryStore())
	return &BoardHandler{
		board: services.NewBoardService(
			models.BoardFree,
			db.NewArticleStore(),
			db.NewCommentStore(),
			galleries,
			history,
		),
		feelings: services.NewFeelingService(db.NewFeelingStore()),
	}
}

// deviceOf classifies the client from its user agent, recorded on creates.
func deviceOf(c *gin.Context) string {
	ua := strings.ToLower(c.GetHeader("User-Agent"))
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "android"), strings.Contains(ua, "iphone"):
		return "mobile"
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	default:
		return "normal"
	}
}

func (h *BoardHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	size := utils.StringToInt(c.DefaultQuery("size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}

	articles, notices, total, err := h.board.List(page, size)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"notices":  notices,
		"total":    total,
		"page":     page,
		"size":     size,
	})
}

func (h *BoardHandler) Categories(c *gin.Context) {
	categories, err := db.ListCategories(models.BoardFree)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *BoardHandler) Detail(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	detail, err := h.board.View(seq, true)
	if err != nil {
		renderError(c, err)
		return
	}

	user := currentUser(c)
	likes, dislikes, err := h.feelings.Counts(&detail.Article)
	if err != nil {
		renderError(c, err)
		return
	}
	mine, err := h.feelings.MyFeeling(&detail.Article, user)
	if err != nil {
		renderError(c, err)
		return
	}

	var contentHTML template.HTML
	if detail.Article.Content != nil {
		contentHTML = utils.RenderMarkdown(*detail.Article.Content)
	}

	c.JSON(http.StatusOK, gin.H{
		"article":       detail.Article,
		"content_html":  contentHTML,
		"galleries":     detail.Galleries,
		"comment_count": detail.CommentCount,
		"likes":         likes,
		"dislikes":      dislikes,
		"my_feeling":    mine,
	})
}

func (h *BoardHandler) Create(c *gin.Context) {
	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}
	if in.Subject == "" || in.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject and content are required"})
		return
	}
	in.Device = deviceOf(c)

	article, err := h.board.Create(currentUser(c), in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *BoardHandler) Edit(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}
	if in.Subject == "" || in.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject and content are required"})
		return
	}

	sid := middleware.StagingSID(c)
	article, err := h.board.Edit(currentUser(c), sid, seq, in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))
	mode := services.DeleteMode(c.DefaultQuery("mode", string(services.DeleteFull)))

	if err := h.board.Delete(currentUser(c), seq, mode); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *BoardHandler) SetNotice(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	if err := h.board.SetNotice(currentUser(c), seq, services.NoticeSet); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *BoardHandler) ClearNotice(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	if err := h.board.SetNotice(currentUser(c), seq, services.NoticeClear); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *BoardHandler) History(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	events, err := h.board.History(seq)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": events})
}
