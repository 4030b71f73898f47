package handlers

import (
	"net/http"

	"freeboard/internal/db"
	"freeboard/internal/middleware"
	"freeboard/internal/services"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	galleries *services.GalleryService
}

func NewGalleryHandler() *GalleryHandler {
	return &GalleryHandler{
		galleries: services.NewGalleryService(db.NewGalleryStore(), services.Staging()),
	}
}

// Upload hosts an image and records it as an unattached gallery. The id it
// returns is what create/edit payloads reference in gallery_ids.
func (h *GalleryHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	gallery, err := h.galleries.Upload(currentUser(c), file, header)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gallery)
}

func (h *GalleryHandler) Detail(c *gin.Context) {
	gallery, err := h.galleries.Find(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gallery)
}

// Remove deletes an unattached upload outright; an attached gallery is only
// staged for removal and goes away when the edit that dropped it completes.
func (h *GalleryHandler) Remove(c *gin.Context) {
	sid := middleware.StagingSID(c)
	if err := h.galleries.Remove(currentUser(c), sid, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
