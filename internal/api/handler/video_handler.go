package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/mediahub/internal/api/middleware"
	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/internal/service"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/response"
)

type updateVideoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Thumbnail   *string `json:"thumbnail" binding:"omitempty,url"`
}

// ListVideos 视频列表
// @Summary 查询视频（标题模糊匹配、按作者过滤、排序分页）
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "标题关键字"
// @Param sortBy query string false "排序字段" default(createdAt)
// @Param sortType query string false "asc|desc" default(desc)
// @Param userId query string false "作者ID"
// @Success 200 {object} response.Response{data=[]model.Video}
// @Failure 400 {object} response.Response
// @Router /api/v1/videos [get]
func (h *Handler) ListVideos(c *gin.Context) {
	p, err := pageParams(c, model.VideoSortFields)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := repository.VideoFilter{Query: c.Query("query"), OwnerID: c.Query("userId")}
	page, err := h.videoService.List(c.Request.Context(), filter, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page.Items, page.Page, page.Limit, page.Total, "All videos fetched successfully")
}

// PublishVideo 发布视频
// @Summary 上传并发布视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file false "封面"
// @Success 201 {object} response.Response{data=model.Video}
// @Failure 400 {object} response.Response
// @Router /api/v1/videos [post]
func (h *Handler) PublishVideo(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	videoHeader, err := c.FormFile("videoFile")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperrors.Validation("upload exceeds size limit"))
			return
		}
		response.Error(c, apperrors.Validation("video file is required"))
		return
	}
	videoFile, closeVideo, err := openUpload(videoHeader)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeVideo()

	in := service.PublishInput{
		OwnerID:     middleware.ActorID(c),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Video:       videoFile,
	}
	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumb, closeThumb, err := openUpload(thumbHeader)
		if err != nil {
			response.Error(c, err)
			return
		}
		defer closeThumb()
		in.Thumbnail = thumb
	}

	video, err := h.videoService.Publish(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video, "Video published successfully")
}

func openUpload(fh *multipart.FileHeader) (*service.File, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.KindValidation, "cannot read uploaded file")
	}
	return &service.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// GetVideo 视频详情
// @Summary 查询视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=model.Video}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{videoId} [get]
func (h *Handler) GetVideo(c *gin.Context) {
	video, err := h.videoService.Get(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video fetched successfully")
}

// UpdateVideo 修改视频信息
// @Summary 修改标题、描述或封面
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param request body updateVideoRequest true "修改字段"
// @Success 200 {object} response.Response{data=model.Video}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{videoId} [patch]
func (h *Handler) UpdateVideo(c *gin.Context) {
	var req updateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	video, err := h.videoService.Update(c.Request.Context(), c.Param("videoId"), repository.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video updated successfully")
}

// DeleteVideo 删除视频（级联删除评论与点赞）
// @Summary 删除视频
// @Tags 视频
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{videoId} [delete]
func (h *Handler) DeleteVideo(c *gin.Context) {
	if err := h.videoService.Delete(c.Request.Context(), c.Param("videoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// TogglePublishStatus 切换发布状态
// @Summary 切换视频发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response{data=model.Video}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{videoId}/publish [patch]
func (h *Handler) TogglePublishStatus(c *gin.Context) {
	video, err := h.videoService.TogglePublish(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video publish status toggled successfully")
}
