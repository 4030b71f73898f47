package services

import (
	"errors"
	"fmt"
	"log"

	"freeboard/internal/models"
)

type GalleryStore interface {
	Create(g *models.Gallery) error
	// FindByID returns ErrNotFound for unknown ids.
	FindByID(id string) (*models.Gallery, error)
	Save(g *models.Gallery) error
	Delete(id string) error
	// ListByOwner returns the galleries attached to one item, in position order.
	ListByOwner(linkedType string, linkedID uint) ([]models.Gallery, error)
}

// GalleryService reconciles client-submitted image references with the
// gallery store and manages the session-scoped staged-removal sets.
type GalleryService struct {
	galleries GalleryStore
	staging   StagingStore
}

func NewGalleryService(galleries GalleryStore, staging StagingStore) *GalleryService {
	return &GalleryService{galleries: galleries, staging: staging}
}

func stagingKey(sid, source string, itemID uint) string {
	return fmt.Sprintf("%s:%s:%d:galleries-for-removal", sid, source, itemID)
}

// ResolveAndAttach turns candidate upload ids into confirmed attachments on
// the owning item. Unknown ids are skipped, not errors: the upload may have
// expired or been removed concurrently. Submission order is kept and ids are
// de-duplicated. Previously attached galleries absent from the candidates
// are detached, which is what later lets a committed removal delete them;
// detaching happens only here, on a completed save, never mid-edit.
func (s *GalleryService) ResolveAndAttach(candidateIDs []string, linkedType string, itemID uint, seq int) ([]models.Gallery, error) {
	previous, err := s.galleries.ListByOwner(linkedType, itemID)
	if err != nil {
		return nil, fmt.Errorf("list attached galleries: %w", err)
	}

	attached := make([]models.Gallery, 0, len(candidateIDs))
	seen := make(map[string]bool, len(candidateIDs))
	position := 0
	for _, id := range candidateIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		gallery, err := s.galleries.FindByID(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve gallery %s: %w", id, err)
		}

		lt, owner, sq := linkedType, itemID, seq
		gallery.LinkedType = &lt
		gallery.LinkedID = &owner
		gallery.LinkedSeq = &sq
		gallery.Position = position
		if err := s.galleries.Save(gallery); err != nil {
			return nil, fmt.Errorf("attach gallery %s: %w", id, err)
		}
		attached = append(attached, *gallery)
		position++
	}

	for i := range previous {
		if seen[previous[i].ID] {
			continue
		}
		previous[i].LinkedType = nil
		previous[i].LinkedID = nil
		previous[i].LinkedSeq = nil
		if err := s.galleries.Save(&previous[i]); err != nil {
			return nil, fmt.Errorf("detach gallery %s: %w", previous[i].ID, err)
		}
	}

	return attached, nil
}

// StageForRemoval records that the editing session wants galleryID gone once
// the edit completes. Idempotent; every call restarts the inactivity window.
func (s *GalleryService) StageForRemoval(sid, source string, itemID uint, galleryID string) error {
	return s.staging.Add(stagingKey(sid, source, itemID), galleryID)
}

// StagedForRemoval lists the session's staged ids for one item.
func (s *GalleryService) StagedForRemoval(sid, source string, itemID uint) ([]string, error) {
	return s.staging.Get(stagingKey(sid, source, itemID))
}

// CommitRemovals is called by the edit-completion path only. It deletes each
// staged gallery that is no longer attached anywhere and clears the staged
// set. Galleries still attached (the edit re-added them, or another item
// owns them now) are kept.
func (s *GalleryService) CommitRemovals(sid, source string, itemID uint) error {
	key := stagingKey(sid, source, itemID)
	ids, err := s.staging.Get(key)
	if err != nil {
		return fmt.Errorf("read staged removals: %w", err)
	}

	for _, id := range ids {
		gallery, err := s.galleries.FindByID(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("resolve staged gallery %s: %w", id, err)
		}
		if gallery.Attached() {
			continue
		}
		if err := s.galleries.Delete(id); err != nil {
			return fmt.Errorf("delete gallery %s: %w", id, err)
		}
		log.Printf("gallery removed on edit completion. id=%s", id)
	}

	return s.staging.Clear(key)
}

// Remove handles a user removing an image during editing. Unattached uploads
// are deleted on the spot; attached ones are only staged, so cancelling the
// edit (or never finishing it) loses nothing.
func (s *GalleryService) Remove(user *models.User, sid, galleryID string) error {
	if user == nil {
		return ErrUnauthorized
	}
	gallery, err := s.galleries.FindByID(galleryID)
	if err != nil {
		return err
	}
	if gallery.UploaderID != user.ID {
		return ErrUnauthorized
	}
	if !gallery.Attached() {
		return s.galleries.Delete(galleryID)
	}
	return s.StageForRemoval(sid, *gallery.LinkedType, *gallery.LinkedID, galleryID)
}

// Find returns one gallery by id.
func (s *GalleryService) Find(id string) (*models.Gallery, error) {
	return s.galleries.FindByID(id)
}

// ListByOwner returns the galleries attached to one item, in position order.
func (s *GalleryService) ListByOwner(linkedType string, linkedID uint) ([]models.Gallery, error) {
	return s.galleries.ListByOwner(linkedType, linkedID)
}
