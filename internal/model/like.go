package model

import "time"

// TargetKind 点赞目标类型
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget references exactly one likable entity.
type LikeTarget struct {
	Kind TargetKind
	ID   string
}

func (t LikeTarget) String() string { return string(t.Kind) + ":" + t.ID }

// Like 点赞（A 点赞某个目标）
type Like struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"userId" gorm:"type:varchar(36);not null;index:idx_like_pair,unique"`
	TargetKind TargetKind `json:"targetKind" gorm:"type:varchar(16);not null;index:idx_like_pair,unique;index:idx_like_target"`
	TargetID   string     `json:"targetId" gorm:"type:varchar(36);not null;index:idx_like_pair,unique;index:idx_like_target"`
	// 复合唯一键，同一用户对同一目标最多一条
	// idx_like_pair = (user_id, target_kind, target_id)
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }
