package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// VideoFilter narrows video listings. Empty fields do not filter.
type VideoFilter struct {
	Query     string // case-insensitive title substring
	OwnerID   string
	Published *bool
}

// VideoUpdate is a partial update; nil fields are left untouched.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

func (u VideoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Thumbnail == nil
}

// VideoRepository 视频仓储接口
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, upd VideoUpdate) (*model.Video, error)
	// Delete removes the video together with its comments and every like that
	// targets the video or one of those comments.
	Delete(ctx context.Context, id string) (*model.Video, error)
	TogglePublish(ctx context.Context, id string) (*model.Video, error)
	List(ctx context.Context, f VideoFilter, p pagination.Params) (*pagination.Page[model.Video], error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository { return &videoRepository{db: db} }

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return dbError(r.db.WithContext(ctx).Create(video).Error, "create video")
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var v model.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&v).Error; err != nil {
		return nil, lookupError(err, "video", id)
	}
	return &v, nil
}

func (r *videoRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &model.Video{}, id)
}

func (r *videoRepository) Update(ctx context.Context, id string, upd VideoUpdate) (*model.Video, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Thumbnail != nil {
		fields["thumbnail"] = *upd.Thumbnail
	}

	res := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, dbError(res.Error, "update video")
	}
	if res.RowsAffected == 0 {
		return nil, lookupError(gorm.ErrRecordNotFound, "video", id)
	}
	return r.GetByID(ctx, id)
}

func (r *videoRepository) Delete(ctx context.Context, id string) (*model.Video, error) {
	var deleted model.Video
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&deleted).Error; err != nil {
			return lookupError(err, "video", id)
		}
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", model.TargetComment, commentIDs).Delete(&model.Like{}).Error; err != nil {
			return dbError(err, "delete comment likes")
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", model.TargetVideo, id).Delete(&model.Like{}).Error; err != nil {
			return dbError(err, "delete video likes")
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return dbError(err, "delete comments")
		}
		res := tx.Where("id = ?", id).Delete(&model.Video{})
		if res.Error != nil {
			return dbError(res.Error, "delete video")
		}
		if res.RowsAffected == 0 {
			return lookupError(gorm.ErrRecordNotFound, "video", id)
		}
		return nil
	})
	if err != nil {
		return nil, dbError(err, "delete video")
	}
	return &deleted, nil
}

// TogglePublish flips is_published with a read-modify-write. Two concurrent
// toggles may both read the same value; the last write wins. A video deleted
// between the read and the write is NotFound.
func (r *videoRepository) TogglePublish(ctx context.Context, id string) (*model.Video, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		Updates(map[string]any{"is_published": v.IsPublished, "updated_at": v.UpdatedAt})
	if res.Error != nil {
		return nil, dbError(res.Error, "toggle publish status")
	}
	if res.RowsAffected == 0 {
		return nil, lookupError(gorm.ErrRecordNotFound, "video", id)
	}
	return v, nil
}

func (r *videoRepository) List(ctx context.Context, f VideoFilter, p pagination.Params) (*pagination.Page[model.Video], error) {
	q := r.db.Model(&model.Video{})
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(s))+"%")
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Published != nil {
		q = q.Where("is_published = ?", *f.Published)
	}
	page, err := pagination.Paginate[model.Video](ctx, q, p)
	if err != nil {
		return nil, dbError(err, "list videos")
	}
	return page, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// exists counts rows of the given model with primary key id.
func exists(ctx context.Context, db *gorm.DB, m any, id string) (bool, error) {
	var cnt int64
	if err := db.WithContext(ctx).Model(m).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, dbError(err, "check existence")
	}
	return cnt > 0, nil
}
