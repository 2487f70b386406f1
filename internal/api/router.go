package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/d60-Lab/mediahub/config"
	_ "github.com/d60-Lab/mediahub/docs"
	"github.com/d60-Lab/mediahub/internal/api/handler"
	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/response"
)

// Options toggles the optional integrations of the router.
type Options struct {
	Sentry  bool
	Tracing bool
	DB      *gorm.DB // used by /health
}

// NewRouter 注册中间件与全部路由
func NewRouter(cfg *config.Config, h *handler.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLog())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gin.Recovery())
	if opts.Tracing {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", health(opts.DB))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Deadline(cfg.Server.RequestTimeout), middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer))
	{
		videos := v1.Group("/videos")
		videos.GET("", h.ListVideos)
		videos.POST("", h.PublishVideo)
		videos.GET("/:videoId", h.GetVideo)
		videos.PATCH("/:videoId", h.UpdateVideo)
		videos.DELETE("/:videoId", h.DeleteVideo)
		videos.PATCH("/:videoId/publish", h.TogglePublishStatus)
		videos.GET("/:videoId/comments", h.ListVideoComments)

		comments := v1.Group("/comments")
		comments.POST("", h.AddComment)
		comments.PATCH("/:commentId", h.UpdateComment)
		comments.DELETE("/:commentId", h.DeleteComment)

		likes := v1.Group("/likes")
		likes.POST("/video/:videoId", h.ToggleLike(model.TargetVideo, "videoId"))
		likes.POST("/comment/:commentId", h.ToggleLike(model.TargetComment, "commentId"))
		likes.POST("/tweet/:tweetId", h.ToggleLike(model.TargetTweet, "tweetId"))
		likes.GET("/me", h.ListLikedVideos)

		subs := v1.Group("/subscriptions")
		subs.POST("/:channelId", h.ToggleSubscription)
		subs.GET("/:channelId/subscribers", h.ListSubscribers)
		subs.GET("/user/:subscriberId", h.ListSubscribedChannels)

		channels := v1.Group("/channels")
		channels.GET("/:channelId/stats", h.GetChannelStats)
		channels.GET("/:channelId/videos", h.GetChannelVideos)
	}
	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, response.Response{StatusCode: http.StatusServiceUnavailable, Message: "database unavailable"})
				return
			}
		}
		response.Success(c, gin.H{"status": "ok"}, "healthy")
	}
}
