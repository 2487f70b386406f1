package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/lock"
	"github.com/d60-Lab/mediahub/pkg/logger"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// LikeService 点赞服务
type LikeService interface {
	Toggle(ctx context.Context, actorID string, target model.LikeTarget) (*ToggleResult[model.Like], error)
	ListLikedVideos(ctx context.Context, actorID string, p pagination.Params) (*pagination.Page[model.Video], error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	guard       lock.Guard
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	guard lock.Guard,
) LikeService {
	if guard == nil {
		guard = lock.Noop{}
	}
	return &likeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo, guard: guard}
}

func (s *likeService) Toggle(ctx context.Context, actorID string, target model.LikeTarget) (*ToggleResult[model.Like], error) {
	if err := ident.CheckAll("userId", actorID, string(target.Kind)+"Id", target.ID); err != nil {
		return nil, err
	}
	if err := s.requireTarget(ctx, target); err != nil {
		return nil, err
	}

	return guarded(ctx, s.guard, "like:"+actorID+":"+target.String(), func() (*ToggleResult[model.Like], error) {
		state, rec, err := s.likeRepo.Toggle(ctx, actorID, target)
		if err != nil {
			return nil, err
		}
		logger.Debug("like toggled",
			zap.String("user", actorID), zap.String("target", target.String()), zap.String("state", string(state)))
		return &ToggleResult[model.Like]{State: state, Record: rec}, nil
	})
}

func (s *likeService) requireTarget(ctx context.Context, target model.LikeTarget) error {
	var (
		found bool
		err   error
	)
	switch target.Kind {
	case model.TargetVideo:
		found, err = s.videoRepo.Exists(ctx, target.ID)
	case model.TargetComment:
		found, err = s.commentRepo.Exists(ctx, target.ID)
	case model.TargetTweet:
		found, err = s.tweetRepo.Exists(ctx, target.ID)
	default:
		return apperrors.Validation(fmt.Sprintf("unknown like target kind %q", target.Kind))
	}
	if err != nil {
		return err
	}
	if !found {
		return apperrors.TargetNotFound(string(target.Kind), target.ID)
	}
	return nil
}

func (s *likeService) ListLikedVideos(ctx context.Context, actorID string, p pagination.Params) (*pagination.Page[model.Video], error) {
	if err := ident.Check("userId", actorID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListLikedVideos(ctx, actorID, p)
}
