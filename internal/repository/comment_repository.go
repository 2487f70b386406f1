package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateContent(ctx context.Context, id, content string) (*model.Comment, error)
	// Delete removes the comment and the likes that target it.
	Delete(ctx context.Context, id string) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID string, p pagination.Params) (*pagination.Page[model.Comment], error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return dbError(r.db.WithContext(ctx).Create(c).Error, "create comment")
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, lookupError(err, "comment", id)
	}
	return &c, nil
}

func (r *commentRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &model.Comment{}, id)
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, dbError(res.Error, "update comment")
	}
	if res.RowsAffected == 0 {
		return nil, lookupError(gorm.ErrRecordNotFound, "comment", id)
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) (*model.Comment, error) {
	var deleted model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&deleted).Error; err != nil {
			return lookupError(err, "comment", id)
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", model.TargetComment, id).Delete(&model.Like{}).Error; err != nil {
			return dbError(err, "delete comment likes")
		}
		res := tx.Where("id = ?", id).Delete(&model.Comment{})
		if res.Error != nil {
			return dbError(res.Error, "delete comment")
		}
		if res.RowsAffected == 0 {
			return lookupError(gorm.ErrRecordNotFound, "comment", id)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err, "delete comment")
	}
	return &deleted, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, p pagination.Params) (*pagination.Page[model.Comment], error) {
	q := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)
	page, err := pagination.Paginate[model.Comment](ctx, q, p)
	if err != nil {
		return nil, dbError(err, "list comments")
	}
	return page, nil
}
