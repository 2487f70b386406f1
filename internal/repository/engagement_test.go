package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/testsupport"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

func defaultPage(t *testing.T) pagination.Params {
	t.Helper()
	p, err := pagination.Parse(pagination.Raw{}, nil)
	require.NoError(t, err)
	return p
}

func TestSubscriptionToggleRoundTrip(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	alice := testsupport.SeedUser(t, db, "alice")
	bob := testsupport.SeedUser(t, db, "bob")

	state, sub, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ToggleAdded, state)
	assert.Equal(t, bob.ID, sub.ChannelID)

	ok, err := repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	state, removed, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ToggleRemoved, state)
	assert.Equal(t, sub.ID, removed.ID)

	n, err := repo.CountByChannel(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubscriptionListings(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	channel := testsupport.SeedUser(t, db, "channel")
	fans := []*model.User{
		testsupport.SeedUser(t, db, "fan1"),
		testsupport.SeedUser(t, db, "fan2"),
		testsupport.SeedUser(t, db, "fan3"),
	}
	for _, f := range fans {
		_, _, err := repo.Toggle(ctx, f.ID, channel.ID)
		require.NoError(t, err)
	}

	subs, err := repo.ListSubscribers(ctx, channel.ID, defaultPage(t))
	require.NoError(t, err)
	assert.EqualValues(t, 3, subs.Total)
	require.Len(t, subs.Items, 3)
	names := map[string]bool{}
	for _, it := range subs.Items {
		names[it.Subscriber.Username] = true
		assert.NotEmpty(t, it.SubscriptionID)
		assert.False(t, it.SubscribedAt.IsZero())
	}
	assert.Equal(t, map[string]bool{"fan1": true, "fan2": true, "fan3": true}, names)

	chans, err := repo.ListSubscribedChannels(ctx, fans[0].ID, defaultPage(t))
	require.NoError(t, err)
	require.Len(t, chans.Items, 1)
	assert.Equal(t, channel.ID, chans.Items[0].Channel.ID)
	assert.Equal(t, "channel", chans.Items[0].Channel.Username)

	empty, err := repo.ListSubscribers(ctx, fans[0].ID, defaultPage(t))
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)
}

func TestLikeToggleIsPerTargetKind(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	u := testsupport.SeedUser(t, db, "u")
	v := testsupport.SeedVideo(t, db, u.ID, "clip", 0)

	state, _, err := repo.Toggle(ctx, u.ID, model.LikeTarget{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ToggleAdded, state)

	// same id under another kind is a distinct target
	state, _, err = repo.Toggle(ctx, u.ID, model.LikeTarget{Kind: model.TargetComment, ID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, model.ToggleAdded, state)

	n, err := repo.CountByTarget(ctx, model.LikeTarget{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestConcurrentTogglesKeepAtMostOneRow(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := NewLikeRepository(db)
	u := testsupport.SeedUser(t, db, "racer")
	v := testsupport.SeedVideo(t, db, u.ID, "race", 0)
	target := model.LikeTarget{Kind: model.TargetVideo, ID: v.ID}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := repo.Toggle(context.Background(), u.ID, target); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.True(t, errors.Is(err, apperrors.ErrConflict), "unexpected error: %v", err)
	}
	assert.LessOrEqual(t, testsupport.Count(t, db, &model.Like{}, "target_id = ?", v.ID), int64(1))
}

func TestListLikedVideosNewestLikeFirst(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	owner := testsupport.SeedUser(t, db, "owner")
	fan := testsupport.SeedUser(t, db, "fan")
	first := testsupport.SeedVideo(t, db, owner.ID, "first", 0)
	second := testsupport.SeedVideo(t, db, owner.ID, "second", 0)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&model.Like{ID: "00000000-0000-0000-0000-000000000001", UserID: fan.ID, TargetKind: model.TargetVideo, TargetID: second.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&model.Like{ID: "00000000-0000-0000-0000-000000000002", UserID: fan.ID, TargetKind: model.TargetVideo, TargetID: first.ID, CreatedAt: base.Add(time.Hour)}).Error)
	// a comment like must not show up
	c := testsupport.SeedComment(t, db, first.ID, owner.ID, "hi")
	_, _, err := repo.Toggle(ctx, fan.ID, model.LikeTarget{Kind: model.TargetComment, ID: c.ID})
	require.NoError(t, err)

	page, err := repo.ListLikedVideos(ctx, fan.ID, defaultPage(t))
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, first.ID, page.Items[0].ID)
	assert.Equal(t, second.ID, page.Items[1].ID)
}
