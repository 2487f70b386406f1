// Package testsupport holds helpers shared by package tests: an in-memory
// SQLite store and seed functions.
package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/database"
	"github.com/d60-Lab/mediahub/pkg/ident"
)

// OpenDB returns a migrated in-memory SQLite database. The pool is pinned to
// one connection so every query sees the same in-memory database.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedUser inserts a user whose name is derived from name.
func SeedUser(t testing.TB, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{ID: ident.New(), Username: name, Email: name + "@example.com", FullName: name}
	mustCreate(t, db, u)
	return u
}

// SeedVideo inserts a published video owned by ownerID.
func SeedVideo(t testing.TB, db *gorm.DB, ownerID, title string, views int64) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:          ident.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		VideoURL:    fmt.Sprintf("http://blob.local/videos/%s.mp4", title),
		Views:       views,
		IsPublished: true,
	}
	mustCreate(t, db, v)
	return v
}

func SeedComment(t testing.TB, db *gorm.DB, videoID, userID, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{ID: ident.New(), VideoID: videoID, UserID: userID, Content: content}
	mustCreate(t, db, c)
	return c
}

func SeedTweet(t testing.TB, db *gorm.DB, ownerID, content string) *model.Tweet {
	t.Helper()
	tw := &model.Tweet{ID: ident.New(), OwnerID: ownerID, Content: content}
	mustCreate(t, db, tw)
	return tw
}

// Count returns the number of rows of m matching where.
func Count(t testing.TB, db *gorm.DB, m any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.WithContext(context.Background()).Model(m)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}
