package model

import "time"

// Comment 视频评论
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VideoID   string    `json:"videoId" gorm:"type:varchar(36);index:idx_comment_video_created;not null"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_comment_video_created"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }

var CommentSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}
