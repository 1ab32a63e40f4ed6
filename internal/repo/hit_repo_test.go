package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MajewskiMichal/RadioHitsManager/internal/domain"
	"github.com/MajewskiMichal/RadioHitsManager/internal/slug"
)

func newHitRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("hit_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateHit_Error_NoTable(t *testing.T) {
	db := newHitRepoDB(t /* no migrations */)
	if _, err := CreateHit(context.Background(), db, "Betonowy Las", 1, time.Now()); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCreateHit_PersistsAndDerivesSlug(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})

	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	hit, err := CreateHit(context.Background(), db, "Betonowy Las", 1, at)
	if err != nil {
		t.Fatalf("CreateHit: %v", err)
	}
	if hit.ID == 0 {
		t.Fatalf("expected store-assigned id, got %+v", hit)
	}
	if hit.TitleURL != "Betonowy-Las" || hit.TitleURL != slug.Make(hit.Title) {
		t.Fatalf("slug out of sync with title: %+v", hit)
	}
	if !hit.CreatedAt.Equal(at) || !hit.UpdatedAt.Equal(at) {
		t.Fatalf("timestamps not taken from caller: %+v", hit)
	}

	// round-trip
	var got domain.Hit
	if err := db.First(&got, "id = ?", hit.ID).Error; err != nil {
		t.Fatalf("load created hit: %v", err)
	}
	if got.Title != "Betonowy Las" || got.TitleURL != "Betonowy-Las" || got.ArtistID != 1 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestFindHitBySlug_NotFound(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	_, err := FindHitBySlug(context.Background(), db, "Not-Existing-Title")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFindHitBySlug_DuplicateSlugs_LowestIDWins(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	ctx := context.Background()

	// Two different creates reducing to the same slug.
	first, err := CreateHit(ctx, db, "Betonowy Las", 1, time.Now())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := CreateHit(ctx, db, "Betonowy  Las", 2, time.Now())
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.TitleURL != second.TitleURL {
		t.Fatalf("fixture broken: slugs differ %q vs %q", first.TitleURL, second.TitleURL)
	}

	got, err := FindHitBySlug(ctx, db, "Betonowy-Las")
	if err != nil {
		t.Fatalf("FindHitBySlug: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected lowest id %d among duplicates, got %d", first.ID, got.ID)
	}
}

func TestUpdateHit_MergesReslugAndTouchesTimestamp(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	hit, err := CreateHit(ctx, db, "Old Title", 1, created)
	if err != nil {
		t.Fatalf("CreateHit: %v", err)
	}

	hit.Title = "New Title"
	updated := created.Add(3 * time.Hour)
	if err := UpdateHit(ctx, db, hit, updated); err != nil {
		t.Fatalf("UpdateHit: %v", err)
	}

	var got domain.Hit
	if err := db.First(&got, "id = ?", hit.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "New Title" || got.TitleURL != "New-Title" {
		t.Fatalf("slug not re-derived on update: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt must not change on update: %+v", got)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("UpdatedAt not refreshed: got %v want %v", got.UpdatedAt, updated)
	}
}

func TestUpdateHit_IdenticalUpdateIsContentNoop(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	ctx := context.Background()

	hit, err := CreateHit(ctx, db, "Betonowy Las", 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateHit: %v", err)
	}

	t1 := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	if err := UpdateHit(ctx, db, hit, t1); err != nil {
		t.Fatalf("first update: %v", err)
	}
	var after1 domain.Hit
	if err := db.First(&after1, "id = ?", hit.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}

	t2 := t1.Add(time.Minute)
	if err := UpdateHit(ctx, db, hit, t2); err != nil {
		t.Fatalf("second update: %v", err)
	}
	var after2 domain.Hit
	if err := db.First(&after2, "id = ?", hit.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}

	if after2.Title != after1.Title || after2.TitleURL != after1.TitleURL || after2.ArtistID != after1.ArtistID {
		t.Fatalf("identical update changed content: %+v vs %+v", after1, after2)
	}
	if !after2.UpdatedAt.Equal(t2) {
		t.Fatalf("timestamp should still refresh on no-op update: %v", after2.UpdatedAt)
	}
}

func TestDeleteHit_RemovesRowPermanently(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	ctx := context.Background()

	hit, err := CreateHit(ctx, db, "Betonowy Las", 1, time.Now())
	if err != nil {
		t.Fatalf("CreateHit: %v", err)
	}
	if err := DeleteHit(ctx, db, hit); err != nil {
		t.Fatalf("DeleteHit: %v", err)
	}

	var count int64
	if err := db.Model(&domain.Hit{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected hard delete, %d rows remain", count)
	}
}

func TestListRecentHits_OrderAscendingAndLimit(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	titles := []string{"First Song", "Second Song", "Third Song"}
	// Insert newest first so ordering cannot come from insertion order.
	for i := len(titles) - 1; i >= 0; i-- {
		if _, err := CreateHit(ctx, db, titles[i], 1, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("seed %q: %v", titles[i], err)
		}
	}

	list, err := ListRecentHits(ctx, db, 20)
	if err != nil {
		t.Fatalf("ListRecentHits: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(list))
	}
	// Oldest first.
	for i, want := range titles {
		if list[i].Title != want {
			t.Fatalf("position %d: got %q want %q (order must be created_at ASC)", i, list[i].Title, want)
		}
	}

	capped, err := ListRecentHits(ctx, db, 2)
	if err != nil {
		t.Fatalf("ListRecentHits capped: %v", err)
	}
	if len(capped) != 2 || capped[0].Title != "First Song" {
		t.Fatalf("limit not applied from the oldest end: %+v", capped)
	}
}

func TestListRecentHits_EmptyStore(t *testing.T) {
	db := newHitRepoDB(t, &domain.Hit{})
	list, err := ListRecentHits(context.Background(), db, 20)
	if err != nil {
		t.Fatalf("ListRecentHits: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}
