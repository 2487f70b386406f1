package model

import "time"

// Video 视频，归属于上传者的频道
type Video struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string    `json:"userId" gorm:"type:varchar(36);index:idx_video_owner_created;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	VideoURL    string    `json:"videoUrl" gorm:"type:varchar(1024);not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"type:varchar(1024)"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_video_owner_created"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string { return "videos" }

// VideoSortFields maps the sortBy values accepted by video listings onto
// columns.
var VideoSortFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"title":       "title",
	"views":       "views",
	"isPublished": "is_published",
}
