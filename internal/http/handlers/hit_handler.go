// Hit HTTP handlers.
//
// This file exposes the REST endpoints for chart hits:
//   - GET    /hits          (list, capped, ETag support)
//   - GET    /hits/{slug}   (detail with embedded artist)
//   - POST   /hits          (create)
//   - PUT    /hits/{slug}   (partial update)
//   - DELETE /hits/{slug}   (remove)
//
// Handlers are transport-thin: they run the ordered validation chain over
// the raw body, delegate to the HitService, and translate results into
// HTTP responses. Validation is short-circuit, first failure wins, and
// each failure carries its own fixed message.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MajewskiMichal/RadioHitsManager/internal/domain"
	"github.com/MajewskiMichal/RadioHitsManager/internal/repo"
	"github.com/MajewskiMichal/RadioHitsManager/internal/services"
	"github.com/MajewskiMichal/RadioHitsManager/internal/validation"
)

// Validation failure messages. Fixed strings, part of the API contract.
const (
	msgBadJSON       = "JSON has an error"
	msgMissingFields = "please provide json data with (title) and (artist_id)"
	msgBadTitle      = "title must be a non empty string containing only letters ans spaces"
	msgBadArtistID   = "artist_id must be an integer"
	msgEmptyUpdate   = "You didn't send anything to update"
	msgHitNotFound   = "This title doesn't exist"
)

//
// Service contract (context-aware)
//

// HitService defines the hit lifecycle operations consumed by HTTP
// handlers. Implementations should be safe for concurrent use and must
// honor the provided context.
type HitService interface {
	// List returns the chart, oldest first, capped.
	List(ctx context.Context) ([]domain.Hit, error)
	// Find resolves a slug to its hit without loading the artist.
	Find(ctx context.Context, titleURL string) (*domain.Hit, error)
	// Get resolves a slug to its hit and the referenced artist (nil when
	// the reference dangles).
	Get(ctx context.Context, titleURL string) (*domain.Hit, *domain.Artist, error)
	// Create inserts a new hit for the given title and artist reference.
	Create(ctx context.Context, title string, artistID int) (*domain.Hit, error)
	// Update merges a patch into the hit matching titleURL.
	Update(ctx context.Context, titleURL string, patch services.HitPatch) (*domain.Hit, error)
	// Delete removes the hit matching titleURL and returns its last state.
	Delete(ctx context.Context, titleURL string) (*domain.Hit, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for hits. It depends on the abstract
// service interface to keep transport concerns separate from business logic.
type Handlers struct {
	hitSvc HitService
}

// New constructs a Handlers instance bound to the given service.
func New(hitSvc HitService) *Handlers {
	return &Handlers{hitSvc: hitSvc}
}

//
// DTOs
//

// GetHitResponse is the JSON envelope for the hit detail endpoint. Artist
// is either the embedded artist object or the literal string "Not in db"
// when the hit references an artist that was never stored.
type GetHitResponse struct {
	Hit    *domain.Hit `json:"hit"`
	Artist any         `json:"artist"`
}

// artistNotInDB is the literal reported for a dangling artist reference.
const artistNotInDB = "Not in db"

//
// Handlers
//

// ListHits godoc
// @ID          listHits
// @Summary     List chart hits
// @Description Returns up to 20 hits ordered by creation time.
// @Tags        Hits
// @Produce     json
// @Success     200  {array}   domain.Hit
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hits [get]
func (h *Handlers) ListHits(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if db := h.serviceDB(); db != nil {
		count, maxTS, err := repo.HitsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"hits:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	hits, err := h.hitSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, hits)
}

// GetHit godoc
// @ID          getHit
// @Summary     Get one hit by slug
// @Description Resolves a title slug to its hit and the referenced artist.
// @Description When several hits share the slug, the oldest row wins.
// @Tags        Hits
// @Produce     json
// @Param       slug  path  string  true  "Title slug"  example(Betonowy-Las)
// @Success     200  {object}  handlers.GetHitResponse
// @Failure     404  {object}  handlers.ErrorResponse "Unknown slug"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hits/{slug} [get]
func (h *Handlers) GetHit(c *gin.Context) {
	ctx := c.Request.Context()

	hit, artist, err := h.hitSvc.Get(ctx, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHitNotFound):
			fail(c, http.StatusNotFound, msgHitNotFound)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	var a any = artistNotInDB
	if artist != nil {
		a = artist
	}
	ok(c, http.StatusOK, GetHitResponse{Hit: hit, Artist: a})
}

// CreateHit godoc
// @ID          createHit
// @Summary     Create a hit
// @Description Validates the JSON payload (title, artist_id) and inserts a
// @Description new hit. The slug is derived from the title; the artist is
// @Description not checked for existence.
// @Tags        Hits
// @Accept      json
// @Produce     json
// @Param       body  body  object  true  "Hit payload: {title, artist_id}"
// @Success     201  {object}  domain.Hit
// @Failure     400  {object}  handlers.ErrorResponse "Validation failure"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hits [post]
func (h *Handlers) CreateHit(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadJSON)
		return
	}
	body, err := validation.Decode(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadJSON)
		return
	}

	// Ordered chain: required fields, then title shape, then artist_id type.
	if !body.HasRequiredFields() {
		fail(c, http.StatusBadRequest, msgMissingFields)
		return
	}
	if !body.ValidTitle() {
		fail(c, http.StatusBadRequest, msgBadTitle)
		return
	}
	if !body.ValidArtistID() {
		fail(c, http.StatusBadRequest, msgBadArtistID)
		return
	}

	title, _ := body.Title()
	artistID, _ := body.ArtistID()

	hit, err := h.hitSvc.Create(ctx, title, artistID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusCreated, hit)
}

// UpdateHit godoc
// @ID          updateHit
// @Summary     Update a hit
// @Description Merges the provided fields into the hit matching the slug.
// @Description Unspecified fields keep their prior value; the slug is
// @Description re-derived whenever the title changes.
// @Tags        Hits
// @Accept      json
// @Produce     json
// @Param       slug  path  string  true  "Title slug"  example(Betonowy-Las)
// @Param       body  body  object  true  "Partial payload: {title?, artist_id?}"
// @Success     201  {object}  domain.Hit
// @Failure     400  {object}  handlers.ErrorResponse "Validation failure"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown slug"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hits/{slug} [put]
func (h *Handlers) UpdateHit(c *gin.Context) {
	ctx := c.Request.Context()
	titleURL := c.Param("slug")

	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadJSON)
		return
	}
	body, err := validation.Decode(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadJSON)
		return
	}

	// Existence comes before any field validation: an unknown slug is 404
	// even when the payload is also bad.
	if _, err := h.hitSvc.Find(ctx, titleURL); err != nil {
		switch {
		case errors.Is(err, services.ErrHitNotFound):
			fail(c, http.StatusNotFound, msgHitNotFound)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if len(body) == 0 {
		fail(c, http.StatusBadRequest, msgEmptyUpdate)
		return
	}
	if body.Has("title") && !body.ValidTitle() {
		fail(c, http.StatusBadRequest, msgBadTitle)
		return
	}
	if body.Has("artist_id") && !body.ValidArtistID() {
		fail(c, http.StatusBadRequest, msgBadArtistID)
		return
	}

	var patch services.HitPatch
	if title, ok := body.Title(); ok {
		patch.Title = &title
	}
	if artistID, ok := body.ArtistID(); ok {
		patch.ArtistID = &artistID
	}

	hit, err := h.hitSvc.Update(ctx, titleURL, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHitNotFound):
			fail(c, http.StatusNotFound, msgHitNotFound)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, hit)
}

// DeleteHit godoc
// @ID          deleteHit
// @Summary     Delete a hit
// @Description Permanently removes the hit matching the slug and returns
// @Description its last serialized state.
// @Tags        Hits
// @Produce     json
// @Param       slug  path  string  true  "Title slug"  example(Betonowy-Las)
// @Success     202  {object}  domain.Hit
// @Failure     404  {object}  handlers.ErrorResponse "Unknown slug"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hits/{slug} [delete]
func (h *Handlers) DeleteHit(c *gin.Context) {
	ctx := c.Request.Context()

	hit, err := h.hitSvc.Delete(ctx, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHitNotFound):
			fail(c, http.StatusNotFound, msgHitNotFound)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	ok(c, http.StatusAccepted, hit)
}

// serviceDB exposes the concrete service's DB handle for best-effort
// extras (ETag stats). Returns nil for stub services in tests.
func (h *Handlers) serviceDB() *gorm.DB {
	if svc, ok := h.hitSvc.(*services.HitService); ok {
		return svc.DB
	}
	return nil
}
