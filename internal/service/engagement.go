package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/lock"
	"github.com/d60-Lab/mediahub/pkg/logger"
)

// ToggleResult is what every engagement toggle returns: the new state and the
// record that was created or removed.
type ToggleResult[T any] struct {
	State  model.ToggleState `json:"state"`
	Record *T                `json:"record"`
}

// guarded runs fn while holding the toggle guard for key. A key held by
// another request is a Conflict. If the guard backend itself fails the toggle
// still runs; the unique indexes keep it correct.
func guarded[T any](ctx context.Context, g lock.Guard, key string, fn func() (T, error)) (T, error) {
	var zero T
	if g == nil {
		return fn()
	}
	release, err := g.Acquire(ctx, key)
	switch {
	case errors.Is(err, lock.ErrHeld):
		return zero, apperrors.Conflict("another toggle for this target is in progress").WithInput(map[string]string{"key": key})
	case err != nil:
		logger.Warn("toggle guard unavailable, relying on unique index", zap.String("key", key), zap.Error(err))
		return fn()
	}
	defer release()
	return fn()
}
