package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/response"
)

// ToggleLike returns the handler for one like target kind; param names the
// path parameter carrying the target id.
//
// @Summary 切换点赞状态
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 201 {object} response.Response "liked"
// @Success 200 {object} response.Response "unliked"
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/likes/video/{videoId} [post]
func (h *Handler) ToggleLike(kind model.TargetKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := model.LikeTarget{Kind: kind, ID: c.Param(param)}
		res, err := h.likeService.Toggle(c.Request.Context(), middleware.ActorID(c), target)
		if err != nil {
			response.Error(c, err)
			return
		}
		if res.State == model.ToggleAdded {
			response.Created(c, res, "Like added to "+string(kind)+" successfully")
			return
		}
		c.JSON(http.StatusOK, response.Response{StatusCode: http.StatusOK, Data: res, Message: "Like removed from " + string(kind) + " successfully"})
	}
}

// ListLikedVideos 当前用户点赞过的视频
// @Summary 我点赞的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=[]model.Video}
// @Failure 400 {object} response.Response
// @Router /api/v1/likes/me [get]
func (h *Handler) ListLikedVideos(c *gin.Context) {
	p, err := pageParams(c, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.likeService.ListLikedVideos(c.Request.Context(), middleware.ActorID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "Liked videos fetched successfully")
}
