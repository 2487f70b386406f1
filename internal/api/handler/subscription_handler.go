package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/response"
)

// ToggleSubscription 订阅/取消订阅频道
// @Summary 切换订阅状态
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "频道ID"
// @Success 201 {object} response.Response "subscribed"
// @Success 200 {object} response.Response "unsubscribed"
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/subscriptions/{channelId} [post]
func (h *Handler) ToggleSubscription(c *gin.Context) {
	res, err := h.subscriptionService.Toggle(c.Request.Context(), middleware.ActorID(c), c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.State == model.ToggleAdded {
		response.Created(c, res, "Subscribed successfully")
		return
	}
	c.JSON(http.StatusOK, response.Response{StatusCode: http.StatusOK, Data: res, Message: "Subscription removed successfully"})
}

// ListSubscribers 查询频道的订阅者
// @Summary 订阅者列表
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "频道ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=[]model.SubscriberEntry}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/subscriptions/{channelId}/subscribers [get]
func (h *Handler) ListSubscribers(c *gin.Context) {
	p, err := pageParams(c, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.subscriptionService.ListSubscribers(c.Request.Context(), c.Param("channelId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "Subscribers fetched successfully")
}

// ListSubscribedChannels 查询用户订阅的频道
// @Summary 已订阅频道列表
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param subscriberId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=[]model.SubscribedChannelEntry}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/subscriptions/user/{subscriberId} [get]
func (h *Handler) ListSubscribedChannels(c *gin.Context) {
	p, err := pageParams(c, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.subscriptionService.ListSubscribedChannels(c.Request.Context(), c.Param("subscriberId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "Subscribed channels fetched successfully")
}
