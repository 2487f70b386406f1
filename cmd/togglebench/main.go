// togglebench drives concurrent subscription and like toggles against the
// configured database and reports latency percentiles, conflicts and the
// cost of the paginated subscriber listing.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/mediahub/config"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/internal/service"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/database"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/lock"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	var guard lock.Guard = lock.Noop{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		guard = lock.NewRedisGuard(rdb, "bench:", cfg.Redis.LockTTL)
	}

	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	subSvc := service.NewSubscriptionService(subRepo, repository.NewUserRepository(db), guard)
	likeSvc := service.NewLikeService(repository.NewLikeRepository(db), videoRepo, commentRepo, repository.NewTweetRepository(db), guard)

	ctx := context.Background()
	N := envInt("N", 10000)
	CONC := envInt("CONC", 8)
	PAGE := envInt("PAGE", 50)
	REPEAT := envInt("REPEAT", 3) // toggles per pair; odd leaves the pair engaged

	// channel owns one video; every other user subscribes to it and likes the video
	channel := model.User{ID: ident.New(), Username: "bench-" + ident.New()[:8]}
	channel.Email = channel.Username + "@bench.local"
	must(0, db.Create(&channel).Error)
	video := model.Video{ID: ident.New(), OwnerID: channel.ID, Title: "bench", Description: "bench", VideoURL: "bench://video", IsPublished: true}
	must(0, db.Create(&video).Error)

	users := make([]model.User, N)
	for i := range users {
		id := ident.New()
		users[i] = model.User{ID: id, Username: "u" + id[:13], Email: id + "@bench.local"}
	}
	must(0, db.CreateInBatches(&users, 1000).Error)

	type result struct {
		d        time.Duration
		conflict bool
		failed   bool
	}
	run := func(op func(userID string) error) ([]time.Duration, int, int, time.Duration) {
		feed := make(chan string, N*REPEAT)
		for r := 0; r < REPEAT; r++ {
			for i := range users {
				feed <- users[i].ID
			}
		}
		close(feed)

		out := make(chan result, N*REPEAT)
		var wg sync.WaitGroup
		t0 := time.Now()
		for w := 0; w < CONC; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for uid := range feed {
					st := time.Now()
					err := op(uid)
					out <- result{
						d:        time.Since(st),
						conflict: errors.Is(err, apperrors.ErrConflict),
						failed:   err != nil && !errors.Is(err, apperrors.ErrConflict),
					}
				}
			}()
		}
		wg.Wait()
		total := time.Since(t0)
		close(out)

		lat := make([]time.Duration, 0, N*REPEAT)
		conflicts, failures := 0, 0
		for r := range out {
			lat = append(lat, r.d)
			if r.conflict {
				conflicts++
			}
			if r.failed {
				failures++
			}
		}
		return lat, conflicts, failures, total
	}

	subLat, subConf, subFail, subDur := run(func(uid string) error {
		_, err := subSvc.Toggle(ctx, uid, channel.ID)
		return err
	})
	likeLat, likeConf, likeFail, likeDur := run(func(uid string) error {
		_, err := likeSvc.Toggle(ctx, uid, model.LikeTarget{Kind: model.TargetVideo, ID: video.ID})
		return err
	})

	p := must(pagination.Parse(pagination.Raw{Limit: strconv.Itoa(min(PAGE, pagination.MaxLimit))}, nil))
	q0 := time.Now()
	page := must(subSvc.ListSubscribers(ctx, channel.ID, p))
	listDur := time.Since(q0)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	ops := N * REPEAT
	fmt.Printf("N=%d, CONC=%d, REPEAT=%d, PAGE=%d, guard=%T\n", N, CONC, REPEAT, PAGE, guard)
	fmt.Printf("Subscribe toggles: total %v, per op %v, p50 %v, p95 %v, p99 %v, conflicts %d, failures %d\n",
		subDur, subDur/time.Duration(ops), pct(subLat, 0.50), pct(subLat, 0.95), pct(subLat, 0.99), subConf, subFail)
	fmt.Printf("Like toggles:      total %v, per op %v, p50 %v, p95 %v, p99 %v, conflicts %d, failures %d\n",
		likeDur, likeDur/time.Duration(ops), pct(likeLat, 0.50), pct(likeLat, 0.95), pct(likeLat, 0.99), likeConf, likeFail)
	fmt.Printf("List subscribers(%d): %v, total subscribers %d\n", p.Limit, listDur, page.Total)
}
