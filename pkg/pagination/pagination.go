// Package pagination parses page/limit/sort parameters and applies them as an
// offset/limit window over a GORM query.
package pagination

import (
	"context"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/mediahub/pkg/apperrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortBy = "createdAt"
	SortAsc       = "asc"
	SortDesc      = "desc"
)

// Params is a validated listing window.
type Params struct {
	Page     int
	Limit    int
	SortBy   string // API field name
	Column   string // column resolved from SortBy
	SortDesc bool
}

// Offset 偏移量
func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// Raw carries the unparsed query-string values.
type Raw struct {
	Page     string
	Limit    string
	SortBy   string
	SortType string
}

// Parse validates raw values. Empty values take defaults; anything else that
// is not a positive integer, a whitelisted sort field or asc/desc is rejected.
// A nil sortFields map disables sorting options and pins the default column.
func Parse(raw Raw, sortFields map[string]string) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit, SortBy: DefaultSortBy, Column: "created_at", SortDesc: true}

	var err error
	if p.Page, err = parsePositive("page", raw.Page, DefaultPage); err != nil {
		return Params{}, err
	}
	if p.Limit, err = parsePositive("limit", raw.Limit, DefaultLimit); err != nil {
		return Params{}, err
	}
	if p.Limit > MaxLimit {
		return Params{}, apperrors.New(apperrors.KindInvalidPagination, "limit must not exceed "+strconv.Itoa(MaxLimit)).
			WithInput(map[string]string{"limit": raw.Limit})
	}
	// the offset must stay representable
	if p.Page-1 > math.MaxInt/p.Limit {
		return Params{}, apperrors.New(apperrors.KindInvalidPagination, "page is out of range").
			WithInput(map[string]string{"page": raw.Page})
	}

	if sortBy := strings.TrimSpace(raw.SortBy); sortBy != "" {
		col, ok := sortFields[sortBy]
		if !ok {
			return Params{}, apperrors.New(apperrors.KindInvalidSort, "unsupported sortBy field").
				WithInput(map[string]string{"sortBy": sortBy})
		}
		p.SortBy, p.Column = sortBy, col
	} else if col, ok := sortFields[DefaultSortBy]; ok {
		p.Column = col
	}

	switch strings.ToLower(strings.TrimSpace(raw.SortType)) {
	case "", SortDesc:
		p.SortDesc = true
	case SortAsc:
		p.SortDesc = false
	default:
		return Params{}, apperrors.New(apperrors.KindInvalidSort, "sortType must be asc or desc").
			WithInput(map[string]string{"sortType": raw.SortType})
	}
	return p, nil
}

func parsePositive(field, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.New(apperrors.KindInvalidPagination, field+" must be a positive integer").
			WithInput(map[string]string{field: raw})
	}
	return n, nil
}

// Page 分页结果
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Option adjusts how Paginate reads the window.
type Option func(*options)

type options struct {
	table   string
	selects string
}

// Qualify prefixes the sort columns with table, for queries with joins.
func Qualify(table string) Option { return func(o *options) { o.table = table } }

// Select sets the projection of the windowed read only; the count query
// always counts rows.
func Select(expr string) Option { return func(o *options) { o.selects = expr } }

// Paginate runs two independent queries over q: a count ignoring the window
// and the windowed, ordered read. The two reads are not snapshot-consistent
// under concurrent writes. q must already carry its Model/Table and filters.
func Paginate[T any](ctx context.Context, q *gorm.DB, p Params, opts ...Option) (*Page[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, p.Limit)
	if total > int64(p.Offset()) {
		read := q.Session(&gorm.Session{}).WithContext(ctx)
		if o.selects != "" {
			read = read.Select(o.selects)
		}
		if err := read.Scopes(window(p, o.table)).Find(&items).Error; err != nil {
			return nil, err
		}
	}
	return &Page[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}, nil
}

// window orders by the resolved column (id as tie breaker) and applies
// offset/limit.
func window(p Params, table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := p.Column
		if column == "" {
			column = "created_at"
		}
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: column}, Desc: p.SortDesc}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}, Desc: p.SortDesc}).
			Offset(p.Offset()).
			Limit(p.Limit)
	}
}
