package handlers

import (
	"net/http"

	"freeboard/internal/db"
	"freeboard/internal/models"
	"freeboard/internal/services"
	"freeboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeelingHandler struct {
	articles *db.ArticleStore
	comments *db.CommentStore
	feelings *services.FeelingService
}

func NewFeelingHandler() *FeelingHandler {
	return &FeelingHandler{
		articles: db.NewArticleStore(),
		comments: db.NewCommentStore(),
		feelings: services.NewFeelingService(db.NewFeelingStore()),
	}
}

// SubmitArticle registers a like or dislike on an article. The outcome is
// always 200: refused submissions carry their outcome code and the current
// counts instead of an error.
func (h *FeelingHandler) SubmitArticle(c *gin.Context) {
	seq := utils.StringToInt(c.Param("seq"))
	kind := services.FeelingKind(c.Param("kind"))

	article, err := h.articles.FindBySeq(models.BoardFree, seq)
	if err != nil {
		renderError(c, err)
		return
	}

	result, err := h.feelings.Submit(article, currentUser(c), kind)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitComment registers a like or dislike on a comment.
func (h *FeelingHandler) SubmitComment(c *gin.Context) {
	cid := c.Param("cid")
	kind := services.FeelingKind(c.Param("kind"))

	comment, err := h.comments.FindByCid(cid)
	if err != nil {
		renderError(c, err)
		return
	}

	result, err := h.feelings.Submit(comment, currentUser(c), kind)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
