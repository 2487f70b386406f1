package service

import (
	"context"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	// TotalLikes counts likes received on the channel's videos.
	TotalLikes int64 `json:"totalLikes"`
}

// AnalyticsService 频道仪表盘
type AnalyticsService interface {
	ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.Video], error)
}

type analyticsService struct {
	stats     repository.StatsRepository
	videoRepo repository.VideoRepository
}

func NewAnalyticsService(stats repository.StatsRepository, videoRepo repository.VideoRepository) AnalyticsService {
	return &analyticsService{stats: stats, videoRepo: videoRepo}
}

// ChannelStats runs the four aggregates one after another. They are not read
// from a single snapshot, and any failure fails the whole call.
func (s *analyticsService) ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	if err := ident.Check("channelId", channelID); err != nil {
		return nil, err
	}

	var out ChannelStats
	steps := []struct {
		name string
		dst  *int64
		run  func(context.Context, string) (int64, error)
	}{
		{"totalVideos", &out.TotalVideos, s.stats.CountVideos},
		{"totalSubscribers", &out.TotalSubscribers, s.stats.CountSubscribers},
		{"totalViews", &out.TotalViews, s.stats.SumViews},
		{"totalLikes", &out.TotalLikes, s.stats.CountLikesReceived},
	}
	for _, step := range steps {
		n, err := step.run(ctx, channelID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindAggregationFailure, "compute "+step.name).
				WithInput(map[string]string{"channelId": channelID})
		}
		*step.dst = n
	}
	return &out, nil
}

func (s *analyticsService) ChannelVideos(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.Video], error) {
	if err := ident.Check("channelId", channelID); err != nil {
		return nil, err
	}
	return s.videoRepo.List(ctx, repository.VideoFilter{OwnerID: channelID}, p)
}
