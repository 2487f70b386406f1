package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
)

// toggleSpec describes one engagement pair for toggleRecord.
type toggleSpec[T any] struct {
	match func(*gorm.DB) *gorm.DB // narrows to the unique (actor, target) row
	id    func(*T) string
	fresh func() *T
}

// toggleRecord flips presence of the unique row selected by spec.match.
//
// Both branches are guarded by the store rather than by the preceding read:
// the delete is by primary key and must affect exactly one row, and the insert
// is backed by the pair's unique index. Losing either race yields Conflict, so
// concurrent identical toggles never leave two rows behind.
func toggleRecord[T any](ctx context.Context, db *gorm.DB, spec toggleSpec[T]) (model.ToggleState, *T, error) {
	var existing T
	err := spec.match(db.WithContext(ctx).Model(new(T))).Take(&existing).Error
	switch {
	case err == nil:
		res := db.WithContext(ctx).Where("id = ?", spec.id(&existing)).Delete(new(T))
		if res.Error != nil {
			return "", nil, dbError(res.Error, "remove engagement")
		}
		if res.RowsAffected == 0 {
			return "", nil, apperrors.Conflict("engagement was removed by a concurrent request")
		}
		return model.ToggleRemoved, &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		rec := spec.fresh()
		if err := db.WithContext(ctx).Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				return "", nil, apperrors.Conflict("engagement was added by a concurrent request")
			}
			return "", nil, dbError(err, "add engagement")
		}
		return model.ToggleAdded, rec, nil

	default:
		return "", nil, dbError(err, "load engagement")
	}
}
