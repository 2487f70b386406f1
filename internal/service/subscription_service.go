package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/lock"
	"github.com/d60-Lab/mediahub/pkg/logger"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

var (
	ErrSubscribeSelf = apperrors.Validation("cannot subscribe to own channel")
)

// SubscriptionService 订阅服务
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (*ToggleResult[model.Subscription], error)
	ListSubscribers(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.SubscriberEntry], error)
	ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) (*pagination.Page[model.SubscribedChannelEntry], error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	guard    lock.Guard
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, guard lock.Guard) SubscriptionService {
	if guard == nil {
		guard = lock.Noop{}
	}
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo, guard: guard}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*ToggleResult[model.Subscription], error) {
	if err := ident.CheckAll("subscriberId", subscriberID, "channelId", channelID); err != nil {
		return nil, err
	}
	if subscriberID == channelID {
		return nil, ErrSubscribeSelf
	}
	if err := s.requireUser(ctx, channelID, "channel", apperrors.TargetNotFound); err != nil {
		return nil, err
	}

	return guarded(ctx, s.guard, "sub:"+subscriberID+":"+channelID, func() (*ToggleResult[model.Subscription], error) {
		state, rec, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
		if err != nil {
			return nil, err
		}
		logger.Debug("subscription toggled",
			zap.String("subscriber", subscriberID), zap.String("channel", channelID), zap.String("state", string(state)))
		return &ToggleResult[model.Subscription]{State: state, Record: rec}, nil
	})
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.SubscriberEntry], error) {
	if err := ident.Check("channelId", channelID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, channelID, "channel", apperrors.NotFound); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID, p)
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) (*pagination.Page[model.SubscribedChannelEntry], error) {
	if err := ident.Check("subscriberId", subscriberID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, subscriberID, "user", apperrors.NotFound); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID, p)
}

func (s *subscriptionService) requireUser(ctx context.Context, id, resource string, missing func(string, string) *apperrors.Error) error {
	ok, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return missing(resource, id)
	}
	return nil
}
