package services

import (
	"errors"
	"testing"
	"time"

	"freeboard/internal/models"
)

func newTestGallery() (*GalleryService, *memGalleryStore, *MemoryStagingStore) {
	store := newMemGalleryStore()
	staging := NewMemoryStagingStore(StagingWindow)
	return NewGalleryService(store, staging), store, staging
}

func upload(t *testing.T, store *memGalleryStore, id string, uploader uint) {
	t.Helper()
	err := store.Create(&models.Gallery{ID: id, UploaderID: uploader, Name: id + ".png", ContentType: "image/png"})
	if err != nil {
		t.Fatalf("seed gallery %s: %v", id, err)
	}
}

func TestResolveAndAttachSkipsUnknownAndDuplicates(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	upload(t, store, "g2", alice.ID)

	attached, err := service.ResolveAndAttach([]string{"g2", "missing", "g1", "g2", ""}, models.GallerySourceArticle, 10, 1)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if len(attached) != 2 {
		t.Fatalf("expected 2 attached, got %d", len(attached))
	}
	// Submission order survives.
	if attached[0].ID != "g2" || attached[1].ID != "g1" {
		t.Fatalf("order lost: %s, %s", attached[0].ID, attached[1].ID)
	}
	if attached[0].Position != 0 || attached[1].Position != 1 {
		t.Fatalf("positions wrong: %d, %d", attached[0].Position, attached[1].Position)
	}

	g2, _ := store.FindByID("g2")
	if !g2.Attached() || *g2.LinkedType != models.GallerySourceArticle || *g2.LinkedID != 10 || *g2.LinkedSeq != 1 {
		t.Fatalf("back-pointer wrong: %+v", g2)
	}
}

func TestResolveAndAttachDetachesDropped(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	upload(t, store, "g2", alice.ID)

	if _, err := service.ResolveAndAttach([]string{"g1", "g2"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}
	// Re-save keeping only g2.
	if _, err := service.ResolveAndAttach([]string{"g2"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("re-attach: %v", err)
	}

	g1, _ := store.FindByID("g1")
	if g1.Attached() {
		t.Fatalf("dropped gallery still attached: %+v", g1)
	}
	g2, _ := store.FindByID("g2")
	if !g2.Attached() {
		t.Fatalf("kept gallery detached: %+v", g2)
	}
}

func TestRemoveUnattachedDeletesImmediately(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)

	if err := service.Remove(alice, "sid-1", "g1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.FindByID("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unattached upload should be gone, got %v", err)
	}
}

func TestRemoveAttachedOnlyStages(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	if _, err := service.ResolveAndAttach([]string{"g1"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := service.Remove(alice, "sid-1", "g1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// Nothing durable changed.
	if _, err := store.FindByID("g1"); err != nil {
		t.Fatalf("attached gallery must survive staging: %v", err)
	}

	staged, _ := service.StagedForRemoval("sid-1", models.GallerySourceArticle, 10)
	if len(staged) != 1 || staged[0] != "g1" {
		t.Fatalf("expected g1 staged, got %v", staged)
	}
}

func TestRemoveOnlyByUploader(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)

	if err := service.Remove(bob, "sid-1", "g1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := service.Remove(nil, "sid-1", "g1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous, got %v", err)
	}
}

func TestStageIsIdempotent(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	if _, err := service.ResolveAndAttach([]string{"g1"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := service.Remove(alice, "sid-1", "g1"); err != nil {
			t.Fatalf("remove #%d: %v", i, err)
		}
	}

	staged, _ := service.StagedForRemoval("sid-1", models.GallerySourceArticle, 10)
	if len(staged) != 1 {
		t.Fatalf("staging not idempotent: %v", staged)
	}
}

func TestCommitRemovalsDeletesDetachedOnly(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	upload(t, store, "g2", alice.ID)
	if _, err := service.ResolveAndAttach([]string{"g1", "g2"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// The editor drops g1 but keeps g2, staging both along the way.
	if err := service.Remove(alice, "sid-1", "g1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := service.Remove(alice, "sid-1", "g2"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// The completed save re-submits only g2, detaching g1.
	if _, err := service.ResolveAndAttach([]string{"g2"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if err := service.CommitRemovals("sid-1", models.GallerySourceArticle, 10); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := store.FindByID("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("dropped gallery should be deleted, got %v", err)
	}
	if _, err := store.FindByID("g2"); err != nil {
		t.Fatalf("re-added gallery must survive commit: %v", err)
	}

	// The staged set is spent.
	staged, _ := service.StagedForRemoval("sid-1", models.GallerySourceArticle, 10)
	if len(staged) != 0 {
		t.Fatalf("staged set should be cleared, got %v", staged)
	}
}

func TestAbandonedEditLosesNothing(t *testing.T) {
	store := newMemGalleryStore()
	staging := NewMemoryStagingStore(10 * time.Millisecond)
	service := NewGalleryService(store, staging)
	upload(t, store, "g1", alice.ID)
	if _, err := service.ResolveAndAttach([]string{"g1"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := service.Remove(alice, "sid-1", "g1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// The editor walks away; the staged set expires on its own.
	time.Sleep(20 * time.Millisecond)

	staged, _ := service.StagedForRemoval("sid-1", models.GallerySourceArticle, 10)
	if len(staged) != 0 {
		t.Fatalf("staged set should have expired, got %v", staged)
	}
	g1, err := store.FindByID("g1")
	if err != nil || !g1.Attached() {
		t.Fatalf("gallery must stay attached after abandoned edit: %v %+v", err, g1)
	}
}

func TestStagingIsSessionScoped(t *testing.T) {
	service, store, _ := newTestGallery()
	upload(t, store, "g1", alice.ID)
	if _, err := service.ResolveAndAttach([]string{"g1"}, models.GallerySourceArticle, 10, 1); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := service.Remove(alice, "sid-1", "g1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// Another session editing the same article sees nothing staged, and its
	// commit leaves the first session's set alone.
	staged, _ := service.StagedForRemoval("sid-2", models.GallerySourceArticle, 10)
	if len(staged) != 0 {
		t.Fatalf("foreign session sees staged ids: %v", staged)
	}
	if err := service.CommitRemovals("sid-2", models.GallerySourceArticle, 10); err != nil {
		t.Fatalf("commit: %v", err)
	}
	staged, _ = service.StagedForRemoval("sid-1", models.GallerySourceArticle, 10)
	if len(staged) != 1 {
		t.Fatalf("first session's set disturbed: %v", staged)
	}
}
