// Package services – HitService
//
// This file implements the HitService, which orchestrates the hit
// lifecycle: listing the chart, resolving a slug to a hit and its artist,
// and creating, patching, and deleting entries. Handlers stay
// transport-thin; everything observable about timestamps, slug/title sync,
// and the dangling-artist tolerance lives here and in the repository.
//
// Service-level errors (e.g., ErrHitNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MajewskiMichal/RadioHitsManager/internal/domain"
)

// displayTimeOffset is added to write timestamps so stored times line up
// with the chart's display timezone (UTC+2).
const displayTimeOffset = 2 * time.Hour

// defaultListLimit caps the public chart listing.
const defaultListLimit = 20

// HitRepo defines the repository contract required by HitService.
// Implementations are responsible for persistence of hits and artists.
type HitRepo interface {
	// FindHitBySlug resolves a slug to the hit with the lowest primary key
	// among duplicates, or gorm.ErrRecordNotFound.
	FindHitBySlug(ctx context.Context, db *gorm.DB, titleURL string) (*domain.Hit, error)

	// CreateHit inserts a new hit; the slug is derived from the title.
	CreateHit(ctx context.Context, db *gorm.DB, title string, artistID int, at time.Time) (*domain.Hit, error)

	// UpdateHit persists a merged hit, re-deriving the slug and refreshing
	// the update timestamp.
	UpdateHit(ctx context.Context, db *gorm.DB, hit *domain.Hit, at time.Time) error

	// DeleteHit removes the row permanently.
	DeleteHit(ctx context.Context, db *gorm.DB, hit *domain.Hit) error

	// ListRecentHits returns hits ordered by creation time ascending,
	// truncated to limit.
	ListRecentHits(ctx context.Context, db *gorm.DB, limit int) ([]domain.Hit, error)

	// FindArtistByID returns (nil, nil) when the artist does not exist.
	FindArtistByID(ctx context.Context, db *gorm.DB, id int) (*domain.Artist, error)
}

// HitPatch carries the optional fields of a partial update. Nil members
// leave the corresponding hit field untouched.
type HitPatch struct {
	Title    *string
	ArtistID *int
}

// HitService provides hit-level operations. It enforces the slug/title sync
// invariant via the repository and applies the display timestamp offset on
// every write.
type HitService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the hit repository used by this service.
	Repo HitRepo

	// ListLimit caps List results; defaults to 20.
	ListLimit int
	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewHitService constructs a HitService with the default chart cap and the
// system clock.
func NewHitService(db *gorm.DB, r HitRepo) *HitService {
	return &HitService{
		DB:        db,
		Repo:      r,
		ListLimit: defaultListLimit,
		Now:       time.Now,
	}
}

// stamp returns the write timestamp: now, display-adjusted.
func (s *HitService) stamp() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Add(displayTimeOffset)
}

// List returns the chart: hits ordered by creation time ascending, capped
// at ListLimit.
func (s *HitService) List(ctx context.Context) ([]domain.Hit, error) {
	limit := s.ListLimit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.Repo.ListRecentHits(ctx, s.DB, limit)
}

// Find resolves a slug to its hit. Used by write paths that need existence
// checked before any payload validation.
func (s *HitService) Find(ctx context.Context, titleURL string) (*domain.Hit, error) {
	hit, err := s.Repo.FindHitBySlug(ctx, s.DB, titleURL)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHitNotFound
	}
	if err != nil {
		return nil, err
	}
	return hit, nil
}

// Get resolves a slug to its hit and the referenced artist. A nil artist
// with a nil error means the hit points at an artist that is not in the
// database; callers report that explicitly instead of failing.
func (s *HitService) Get(ctx context.Context, titleURL string) (*domain.Hit, *domain.Artist, error) {
	hit, err := s.Find(ctx, titleURL)
	if err != nil {
		return nil, nil, err
	}
	artist, err := s.Repo.FindArtistByID(ctx, s.DB, hit.ArtistID)
	if err != nil {
		return nil, nil, err
	}
	return hit, artist, nil
}

// Create inserts a new hit. The title is trimmed before storage; the
// referenced artist is deliberately not checked for existence.
func (s *HitService) Create(ctx context.Context, title string, artistID int) (*domain.Hit, error) {
	return s.Repo.CreateHit(ctx, s.DB, strings.TrimSpace(title), artistID, s.stamp())
}

// Update merges the patch into the hit matching titleURL. Unset patch
// fields keep their prior value; the slug is re-derived from the resulting
// title and the update timestamp refreshed even for a content no-op.
func (s *HitService) Update(ctx context.Context, titleURL string, patch HitPatch) (*domain.Hit, error) {
	hit, err := s.Find(ctx, titleURL)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		hit.Title = *patch.Title
	}
	if patch.ArtistID != nil {
		hit.ArtistID = *patch.ArtistID
	}
	if err := s.Repo.UpdateHit(ctx, s.DB, hit, s.stamp()); err != nil {
		return nil, err
	}
	return hit, nil
}

// Delete removes the hit matching titleURL and returns its last state.
func (s *HitService) Delete(ctx context.Context, titleURL string) (*domain.Hit, error) {
	hit, err := s.Find(ctx, titleURL)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteHit(ctx, s.DB, hit); err != nil {
		return nil, err
	}
	return hit, nil
}
