package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (model.ToggleState, *model.Subscription, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	ListSubscribers(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.SubscriberEntry], error)
	ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) (*pagination.Page[model.SubscribedChannelEntry], error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (model.ToggleState, *model.Subscription, error) {
	return toggleRecord(ctx, r.db, toggleSpec[model.Subscription]{
		match: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
		},
		id: func(s *model.Subscription) string { return s.ID },
		fresh: func() *model.Subscription {
			return &model.Subscription{ID: ident.New(), SubscriberID: subscriberID, ChannelID: channelID}
		},
	})
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&cnt).Error; err != nil {
		return false, dbError(err, "check subscription")
	}
	return cnt > 0, nil
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&cnt).Error
	return cnt, dbError(err, "count subscribers")
}

// subscriptionRow is the flat projection of a subscription joined to a user.
type subscriptionRow struct {
	SubscriptionID string
	SubscribedAt   time.Time
	UserID         string
	Username       string
	Email          string
	FullName       string
}

func (row subscriptionRow) summary() model.UserSummary {
	return model.UserSummary{ID: row.UserID, Username: row.Username, Email: row.Email, FullName: row.FullName}
}

const subscriptionRowSelect = "subscriptions.id AS subscription_id, subscriptions.created_at AS subscribed_at, " +
	"users.id AS user_id, users.username AS username, users.email AS email, users.full_name AS full_name"

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string, p pagination.Params) (*pagination.Page[model.SubscriberEntry], error) {
	q := r.db.Table("subscriptions").
		Joins("JOIN users ON users.id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelID)
	rows, err := pagination.Paginate[subscriptionRow](ctx, q, p,
		pagination.Qualify("subscriptions"), pagination.Select(subscriptionRowSelect))
	if err != nil {
		return nil, dbError(err, "list subscribers")
	}
	out := &pagination.Page[model.SubscriberEntry]{Items: make([]model.SubscriberEntry, 0, len(rows.Items)), Page: rows.Page, Limit: rows.Limit, Total: rows.Total}
	for _, row := range rows.Items {
		out.Items = append(out.Items, model.SubscriberEntry{SubscriptionID: row.SubscriptionID, Subscriber: row.summary(), SubscribedAt: row.SubscribedAt})
	}
	return out, nil
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) (*pagination.Page[model.SubscribedChannelEntry], error) {
	q := r.db.Table("subscriptions").
		Joins("JOIN users ON users.id = subscriptions.channel_id").
		Where("subscriptions.subscriber_id = ?", subscriberID)
	rows, err := pagination.Paginate[subscriptionRow](ctx, q, p,
		pagination.Qualify("subscriptions"), pagination.Select(subscriptionRowSelect))
	if err != nil {
		return nil, dbError(err, "list subscribed channels")
	}
	out := &pagination.Page[model.SubscribedChannelEntry]{Items: make([]model.SubscribedChannelEntry, 0, len(rows.Items)), Page: rows.Page, Limit: rows.Limit, Total: rows.Total}
	for _, row := range rows.Items {
		out.Items = append(out.Items, model.SubscribedChannelEntry{SubscriptionID: row.SubscriptionID, Channel: row.summary(), SubscribedAt: row.SubscribedAt})
	}
	return out, nil
}
