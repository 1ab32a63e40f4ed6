// Package domain defines the persistence models for hits and artists.
// These types are mapped with GORM and form the core data layer of the
// radio hits application.
package domain

import "time"

// Hit represents a single chart entry: a song title together with its
// URL-safe slug and a reference to the performing artist.
//
// The JSON projection of a Hit is deliberately narrow: only id, title and
// title_url are public. Timestamps and the raw artist_id are internal
// bookkeeping and never leave the API.
//
// Fields:
//   - ID: auto-incremented numeric primary key, assigned by the store.
//   - Title: song title (letters and spaces, validated at write time).
//   - TitleURL: slug derived from Title. Not unique; multiple hits may
//     share a slug and lookups resolve ties by lowest primary key.
//   - CreatedAt / UpdatedAt: write timestamps managed by the service layer
//     (display-adjusted), so GORM auto-stamping is disabled.
//   - ArtistID: reference to the artist row. Intentionally unenforced at
//     the schema level: a Hit may point at an artist that was never created.
type Hit struct {
	ID        int       `json:"id"        gorm:"primaryKey"`
	Title     string    `json:"title"     gorm:"type:varchar(200);not null"`
	TitleURL  string    `json:"title_url" gorm:"type:varchar(240);not null;index:idx_hits_title_url"`
	CreatedAt time.Time `json:"-"         gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"-"         gorm:"not null;autoUpdateTime:false"`
	ArtistID  int       `json:"-"         gorm:"not null;index:idx_hits_artist"`
}

// TableName returns the database table name for Hit.
func (Hit) TableName() string { return "hits" }

// Artist represents a performer. Artists are referenced by hits but are
// never mutated or deleted through the public API; rows exist mostly to be
// embedded in hit detail responses.
type Artist struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name"  gorm:"type:varchar(120);not null"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the database table name for Artist.
func (Artist) TableName() string { return "artists" }
