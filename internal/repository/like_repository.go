package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

type LikeRepository interface {
	Toggle(ctx context.Context, userID string, target model.LikeTarget) (model.ToggleState, *model.Like, error)
	Exists(ctx context.Context, userID string, target model.LikeTarget) (bool, error)
	CountByTarget(ctx context.Context, target model.LikeTarget) (int64, error)
	ListLikedVideos(ctx context.Context, userID string, p pagination.Params) (*pagination.Page[model.Video], error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Toggle(ctx context.Context, userID string, target model.LikeTarget) (model.ToggleState, *model.Like, error) {
	return toggleRecord(ctx, r.db, toggleSpec[model.Like]{
		match: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID)
		},
		id: func(l *model.Like) string { return l.ID },
		fresh: func() *model.Like {
			return &model.Like{ID: ident.New(), UserID: userID, TargetKind: target.Kind, TargetID: target.ID}
		},
	})
}

func (r *likeRepository) Exists(ctx context.Context, userID string, target model.LikeTarget) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		Count(&cnt).Error
	if err != nil {
		return false, dbError(err, "check like")
	}
	return cnt > 0, nil
}

func (r *likeRepository) CountByTarget(ctx context.Context, target model.LikeTarget) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&cnt).Error
	return cnt, dbError(err, "count likes")
}

// ListLikedVideos returns the videos userID liked, most recent like first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID string, p pagination.Params) (*pagination.Page[model.Video], error) {
	q := r.db.Model(&model.Video{}).
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_kind = ?", model.TargetVideo).
		Where("likes.user_id = ?", userID)
	p.Column = "created_at"
	page, err := pagination.Paginate[model.Video](ctx, q, p, pagination.Qualify("likes"), pagination.Select("videos.*"))
	if err != nil {
		return nil, dbError(err, "list liked videos")
	}
	return page, nil
}
