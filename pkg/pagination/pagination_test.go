package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/mediahub/pkg/apperrors"
)

var fields = map[string]string{"createdAt": "created_at", "title": "title"}

func TestParseDefaults(t *testing.T) {
	p, err := Parse(Raw{}, fields)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "created_at", p.Column)
	assert.True(t, p.SortDesc)
	assert.Equal(t, 0, p.Offset())
}

func TestParseValues(t *testing.T) {
	p, err := Parse(Raw{Page: "3", Limit: "25", SortBy: "title", SortType: "ASC"}, fields)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, "title", p.Column)
	assert.False(t, p.SortDesc)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		raw  Raw
		kind error
	}{
		{Raw{Page: "0"}, apperrors.ErrInvalidPagination},
		{Raw{Page: "-2"}, apperrors.ErrInvalidPagination},
		{Raw{Page: "abc"}, apperrors.ErrInvalidPagination},
		{Raw{Limit: "0"}, apperrors.ErrInvalidPagination},
		{Raw{Limit: "101"}, apperrors.ErrInvalidPagination},
		{Raw{SortBy: "password"}, apperrors.ErrInvalidSort},
		{Raw{SortType: "sideways"}, apperrors.ErrInvalidSort},
	}
	for _, tc := range cases {
		_, err := Parse(tc.raw, fields)
		assert.True(t, errors.Is(err, tc.kind), "%+v -> %v", tc.raw, err)
	}
}

func TestParseMaxLimitAccepted(t *testing.T) {
	p, err := Parse(Raw{Limit: "100"}, fields)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, p.Limit)
}

type row struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	CreatedAt time.Time
}

func openRows(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&row{}))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&row{
			ID:        fmt.Sprintf("r%03d", i),
			Title:     fmt.Sprintf("t%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
	return db
}

func TestPaginateItemCount(t *testing.T) {
	const total = 23
	db := openRows(t, total)

	for _, limit := range []int{1, 5, 10, 23, 100} {
		for page := 1; page <= 6; page++ {
			p, err := Parse(Raw{Page: fmt.Sprint(page), Limit: fmt.Sprint(limit)}, fields)
			require.NoError(t, err)

			res, err := Paginate[row](context.Background(), db.Model(&row{}), p)
			require.NoError(t, err)

			want := total - (page-1)*limit
			if want < 0 {
				want = 0
			}
			if want > limit {
				want = limit
			}
			assert.Len(t, res.Items, want, "page=%d limit=%d", page, limit)
			assert.EqualValues(t, total, res.Total)
			assert.NotNil(t, res.Items)
		}
	}
}

func TestPaginateOrdering(t *testing.T) {
	db := openRows(t, 5)

	p, err := Parse(Raw{Limit: "2"}, fields)
	require.NoError(t, err)
	res, err := Paginate[row](context.Background(), db.Model(&row{}), p)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "r004", res.Items[0].ID)
	assert.Equal(t, "r003", res.Items[1].ID)

	p, err = Parse(Raw{SortBy: "title", SortType: "asc", Page: "2", Limit: "2"}, fields)
	require.NoError(t, err)
	res, err = Paginate[row](context.Background(), db.Model(&row{}), p)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "t002", res.Items[0].Title)
	assert.Equal(t, "t003", res.Items[1].Title)
}

func TestPaginateFilterAppliesToCount(t *testing.T) {
	db := openRows(t, 10)

	p, err := Parse(Raw{}, fields)
	require.NoError(t, err)
	res, err := Paginate[row](context.Background(), db.Model(&row{}).Where("title < ?", "t004"), p)
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.Total)
	assert.Len(t, res.Items, 4)
}

func TestParseRejectsOverflowingOffset(t *testing.T) {
	const limit = 10
	lastPage := math.MaxInt/limit + 1

	_, err := Parse(Raw{Page: strconv.Itoa(lastPage + 1), Limit: strconv.Itoa(limit)}, fields)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPagination), "%v", err)

	_, err = Parse(Raw{Page: strconv.Itoa(math.MaxInt), Limit: "2"}, fields)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPagination), "%v", err)
}

func TestPaginateFarPageIsEmpty(t *testing.T) {
	db := openRows(t, 3)
	const limit = 10

	p, err := Parse(Raw{Page: strconv.Itoa(math.MaxInt/limit + 1), Limit: strconv.Itoa(limit)}, fields)
	require.NoError(t, err)
	assert.Positive(t, p.Offset())

	res, err := Paginate[row](context.Background(), db.Model(&row{}), p)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.EqualValues(t, 3, res.Total)
}
