package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/response"
)

// GetChannelStats 频道统计
// @Summary 频道统计数据
// @Description totalLikes 为频道视频收到的点赞数
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "频道ID"
// @Success 200 {object} response.Response{data=service.ChannelStats}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /api/v1/channels/{channelId}/stats [get]
func (h *Handler) GetChannelStats(c *gin.Context) {
	stats, err := h.analyticsService.ChannelStats(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats, "Channel stats fetched successfully")
}

// GetChannelVideos 频道视频列表
// @Summary 频道视频列表
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "频道ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段" default(createdAt)
// @Param sortType query string false "asc|desc" default(desc)
// @Success 200 {object} response.Response{data=[]model.Video}
// @Failure 400 {object} response.Response
// @Router /api/v1/channels/{channelId}/videos [get]
func (h *Handler) GetChannelVideos(c *gin.Context) {
	p, err := pageParams(c, model.VideoSortFields)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.analyticsService.ChannelVideos(c.Request.Context(), c.Param("channelId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "Channel videos fetched successfully")
}
