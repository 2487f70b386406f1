package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/internal/model"
)

// TweetRepository covers the little the API needs from tweets: they are only
// ever like targets.
type TweetRepository interface {
	Create(ctx context.Context, t *model.Tweet) error
	GetByID(ctx context.Context, id string) (*model.Tweet, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type tweetRepository struct{ db *gorm.DB }

func NewTweetRepository(db *gorm.DB) TweetRepository { return &tweetRepository{db: db} }

func (r *tweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	return dbError(r.db.WithContext(ctx).Create(t).Error, "create tweet")
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*model.Tweet, error) {
	var t model.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error; err != nil {
		return nil, lookupError(err, "tweet", id)
	}
	return &t, nil
}

func (r *tweetRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &model.Tweet{}, id)
}
