package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
)

// StatsRepository holds the per-channel aggregate queries behind the
// dashboard. Each method is one independent read.
type StatsRepository interface {
	CountVideos(ctx context.Context, channelID string) (int64, error)
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	SumViews(ctx context.Context, channelID string) (int64, error)
	// CountLikesReceived counts likes whose target is one of the channel's
	// videos.
	CountLikesReceived(ctx context.Context, channelID string) (int64, error)
}

type statsRepository struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) StatsRepository { return &statsRepository{db: db} }

func (r *statsRepository) CountVideos(ctx context.Context, channelID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("owner_id = ?", channelID).Count(&cnt).Error
	return cnt, err
}

func (r *statsRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&cnt).Error
	return cnt, err
}

// SumViews is 0 for a channel without videos.
func (r *statsRepository) SumViews(ctx context.Context, channelID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Where("owner_id = ?", channelID).
		Scan(&total).Error
	return total, err
}

func (r *statsRepository) CountLikesReceived(ctx context.Context, channelID string) (int64, error) {
	videoIDs := r.db.Model(&model.Video{}).Select("id").Where("owner_id = ?", channelID)
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id IN (?)", model.TargetVideo, videoIDs).
		Count(&cnt).Error
	return cnt, err
}
