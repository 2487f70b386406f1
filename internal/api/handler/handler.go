package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/mediahub/internal/service"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// Handler 聚合各业务服务的 HTTP 处理器
type Handler struct {
	videoService        service.VideoService
	commentService      service.CommentService
	likeService         service.LikeService
	subscriptionService service.SubscriptionService
	analyticsService    service.AnalyticsService
	maxUploadBytes      int64
}

// Services groups the dependencies of Handler.
type Services struct {
	Video        service.VideoService
	Comment      service.CommentService
	Like         service.LikeService
	Subscription service.SubscriptionService
	Analytics    service.AnalyticsService
}

func NewHandler(s Services, maxUploadBytes int64) *Handler {
	return &Handler{
		videoService:        s.Video,
		commentService:      s.Comment,
		likeService:         s.Like,
		subscriptionService: s.Subscription,
		analyticsService:    s.Analytics,
		maxUploadBytes:      maxUploadBytes,
	}
}

// pageParams reads page, limit, sortBy and sortType from the query string.
func pageParams(c *gin.Context, sortFields map[string]string) (pagination.Params, error) {
	return pagination.Parse(pagination.Raw{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}, sortFields)
}

// bindError turns a gin binding failure into a ValidationFailure naming the
// offending fields.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		input := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			input[fe.Field()] = fe.Value()
		}
		return apperrors.Validation("invalid fields: " + strings.Join(fields, ", ")).WithInput(input)
	}
	return apperrors.Validation("malformed request body: " + err.Error())
}
