// Package repo implements the data persistence layer for hits and artists,
// backed by GORM. This file provides repository functions for the Artist model.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MajewskiMichal/RadioHitsManager/internal/domain"
)

// FindArtistByID looks up an artist by primary key. A missing artist is not
// an error: hits are allowed to reference artists that were never created,
// so the caller gets (nil, nil) and decides how to report the gap.
func FindArtistByID(ctx context.Context, db *gorm.DB, id int) (*domain.Artist, error) {
	var a domain.Artist
	err := db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArtist inserts a new artist row. Artists have no public write
// endpoint; this exists for seeding and tests.
func CreateArtist(ctx context.Context, db *gorm.DB, firstName, lastName string) (*domain.Artist, error) {
	a := &domain.Artist{FirstName: firstName, LastName: lastName}
	return a, db.WithContext(ctx).Create(a).Error
}
