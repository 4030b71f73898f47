package services

import (
	"errors"
	"fmt"

	"freeboard/internal/models"

	"github.com/google/uuid"
)

type FeelingKind string

const (
	FeelingLike    FeelingKind = models.FeelingKindLike
	FeelingDislike FeelingKind = models.FeelingKindDislike
)

// FeelingOutcome is the result code of a feeling submission. Only the
// accepted outcomes mutate the target.
type FeelingOutcome string

const (
	FeelingAnonymous       FeelingOutcome = "anonymous"
	FeelingWriterForbidden FeelingOutcome = "writer-forbidden"
	FeelingAlreadyVoted    FeelingOutcome = "already-voted"
	FeelingAcceptedLike    FeelingOutcome = "accepted-like"
	FeelingAcceptedDislike FeelingOutcome = "accepted-dislike"
)

// FeelingResult always carries current set sizes so the caller can render
// up-to-date counts regardless of outcome.
type FeelingResult struct {
	Outcome  FeelingOutcome `json:"outcome"`
	Likes    int64          `json:"likes"`
	Dislikes int64          `json:"dislikes"`
}

// FeelingTarget is anything a feeling can be registered against. Articles
// and comments both satisfy it; the algorithm is implemented once.
type FeelingTarget interface {
	FeelingRef() models.FeelingRef
	TargetWriter() *models.Writer
}

type FeelingStore interface {
	// Insert adds the record unless the user already appears in either set
	// of the target, in which case it returns ErrAlreadyExists. The check
	// and the write are a single atomic unit.
	Insert(f *models.Feeling) error
	Counts(ref models.FeelingRef) (likes, dislikes int64, err error)
	// FindByUser returns the user's record on the target, or ErrNotFound.
	FindByUser(ref models.FeelingRef, userID uint) (*models.Feeling, error)
}

type FeelingService struct {
	feelings FeelingStore
}

func NewFeelingService(feelings FeelingStore) *FeelingService {
	return &FeelingService{feelings: feelings}
}

// Submit registers user's like or dislike on target. First matching rule
// wins: anonymous, writer-forbidden, already-voted, accepted. Only accepted
// submissions write; everything else reports current counts untouched.
func (s *FeelingService) Submit(target FeelingTarget, user *models.User, kind FeelingKind) (*FeelingResult, error) {
	if kind != FeelingLike && kind != FeelingDislike {
		return nil, fmt.Errorf("feeling %q: %w", kind, ErrNotAcceptable)
	}

	ref := target.FeelingRef()

	var outcome FeelingOutcome
	switch {
	case user == nil:
		outcome = FeelingAnonymous
	case target.TargetWriter() != nil && target.TargetWriter().UserID == user.ID:
		outcome = FeelingWriterForbidden
	default:
		record := &models.Feeling{
			Fid:       uuid.NewString(),
			UserID:    user.ID,
			Username:  user.Username,
			ArticleID: ref.ArticleID,
			CommentID: ref.CommentID,
			Kind:      string(kind),
		}
		// The insert is the arbiter: two racing submissions by the same user
		// cannot both land, the loser comes back as already-voted.
		err := s.feelings.Insert(record)
		switch {
		case errors.Is(err, ErrAlreadyExists):
			outcome = FeelingAlreadyVoted
		case err != nil:
			return nil, fmt.Errorf("insert feeling: %w", err)
		case kind == FeelingDislike:
			outcome = FeelingAcceptedDislike
		default:
			outcome = FeelingAcceptedLike
		}
	}

	likes, dislikes, err := s.feelings.Counts(ref)
	if err != nil {
		return nil, fmt.Errorf("count feelings: %w", err)
	}

	return &FeelingResult{Outcome: outcome, Likes: likes, Dislikes: dislikes}, nil
}

// MyFeeling reports which side of the target the user is already on, or ""
// when they have not voted (or are anonymous).
func (s *FeelingService) MyFeeling(target FeelingTarget, user *models.User) (FeelingKind, error) {
	if user == nil {
		return "", nil
	}
	record, err := s.feelings.FindByUser(target.FeelingRef(), user.ID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find feeling: %w", err)
	}
	return FeelingKind(record.Kind), nil
}

// Counts returns the current set sizes of the target.
func (s *FeelingService) Counts(target FeelingTarget) (likes, dislikes int64, err error) {
	return s.feelings.Counts(target.FeelingRef())
}
