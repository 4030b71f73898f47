package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"freeboard/internal/models"

	"github.com/google/uuid"
)

// ImgurResponse is the relevant slice of the imgur API response.
type ImgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
		Type string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// uploadToImgur pushes the image bytes to imgur and returns the hosted link.
func uploadToImgur(file multipart.File) (string, error) {
	clientID := os.Getenv("IMGUR_CLIENT_ID")
	if clientID == "" {
		return "", fmt.Errorf("IMGUR_CLIENT_ID not configured")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64Image); err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequest("POST", "https://api.imgur.com/3/image", &requestBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var imgurResp ImgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if !imgurResp.Success {
		return "", fmt.Errorf("imgur upload failed: status %d", imgurResp.Status)
	}

	return imgurResp.Data.Link, nil
}

// Upload hosts the image and records it as an unattached gallery. It becomes
// owned only once an article or comment save commits it via ResolveAndAttach.
func (s *GalleryService) Upload(user *models.User, file multipart.File, header *multipart.FileHeader) (*models.Gallery, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("content type %q: %w", contentType, ErrNotAcceptable)
	}

	url, err := uploadToImgur(file)
	if err != nil {
		return nil, err
	}

	gallery := &models.Gallery{
		ID:           uuid.NewString(),
		UploaderID:   user.ID,
		UploaderName: user.Username,
		Name:         header.Filename,
		Size:         header.Size,
		ContentType:  contentType,
		URL:          url,
	}
	if err := s.galleries.Create(gallery); err != nil {
		return nil, fmt.Errorf("save gallery: %w", err)
	}
	return gallery, nil
}
