package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/response"
)

type createCommentRequest struct {
	VideoID string `json:"videoId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required,max=5000"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// ListVideoComments 视频评论列表
// @Summary 查询视频评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=[]model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{videoId}/comments [get]
func (h *Handler) ListVideoComments(c *gin.Context) {
	p, err := pageParams(c, model.CommentSortFields)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.commentService.ListByVideo(c.Request.Context(), c.Param("videoId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "All video comments are fetched successfully")
}

// AddComment 发表评论
// @Summary 发表评论
// @Description userId 必须与令牌中的用户一致
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createCommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	// 只能以自己的身份发表评论
	if req.UserID != middleware.ActorID(c) {
		response.Error(c, apperrors.Validation("userId must be the authenticated user").
			WithInput(map[string]string{"userId": req.UserID}))
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), req.VideoID, req.UserID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment, "Comment is created successfully")
}

// UpdateComment 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "评论ID"
// @Param request body updateCommentRequest true "新内容"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{commentId} [patch]
func (h *Handler) UpdateComment(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	comment, err := h.commentService.Update(c.Request.Context(), c.Param("commentId"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment, "Comment updated successfully")
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags 评论
// @Security BearerAuth
// @Param commentId path string true "评论ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), c.Param("commentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
