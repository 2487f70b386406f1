package model

import "time"

// Subscription 订阅关系（Subscriber 订阅 Channel）
type Subscription struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SubscriberID string `json:"subscriberId" gorm:"type:varchar(36);index:idx_sub_subscriber;index:idx_sub_pair,unique;not null"`
	ChannelID    string `json:"channelId" gorm:"type:varchar(36);not null;index:idx_sub_pair,unique;index:idx_sub_channel"`
	// 复合唯一键，避免重复订阅
	// idx_sub_pair = (subscriber_id, channel_id)
	CreatedAt time.Time `json:"createdAt"`
}

func (Subscription) TableName() string { return "subscriptions" }

// SubscriberEntry is one row of a channel's subscriber listing.
type SubscriberEntry struct {
	SubscriptionID string      `json:"subscriptionId"`
	Subscriber     UserSummary `json:"subscriber"`
	SubscribedAt   time.Time   `json:"subscribedAt"`
}

// SubscribedChannelEntry is one row of a user's subscribed-channel listing.
type SubscribedChannelEntry struct {
	SubscriptionID string      `json:"subscriptionId"`
	Channel        UserSummary `json:"channel"`
	SubscribedAt   time.Time   `json:"subscribedAt"`
}
