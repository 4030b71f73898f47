package handlers

import (
	"net/http"

	"freeboard/internal/db"
	"freeboard/internal/models"
	"freeboard/internal/services"
	"freeboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	board *services.BoardService
}

func NewCommentHandler() *CommentHandler {
	galleries := services.NewGalleryService(db.NewGalleryStore(), services.Staging())
	history := services.NewHistoryService(db.NewHistoryStore())
	return &CommentHandler{
		board: services.NewBoardService(
			models.BoardFree,
			db.NewArticleStore(),
			db.NewCommentStore(),
			galleries,
			history,
		),
	}
}

type commentRequest struct {
	Content    string   `json:"content" binding:"required"`
	GalleryIDs []string `json:"gallery_ids"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment, err := h.board.WriteComment(currentUser(c), seq, req.Content, req.GalleryIDs)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	size := utils.StringToInt(c.DefaultQuery("size", "50"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	comments, total, err := h.board.Comments(seq, page, size)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"size":     size,
	})
}
