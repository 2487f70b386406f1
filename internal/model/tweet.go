package model

import "time"

// Tweet 仅作为点赞目标出现
type Tweet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string { return "tweets" }
