package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/logger"
	"github.com/d60-Lab/mediahub/pkg/oss"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// File is an uploaded file handed to Publish.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PublishInput 发布视频参数
type PublishInput struct {
	OwnerID     string
	Title       string
	Description string
	Video       *File
	Thumbnail   *File
}

// VideoService 视频服务
type VideoService interface {
	Publish(ctx context.Context, in PublishInput) (*model.Video, error)
	Get(ctx context.Context, id string) (*model.Video, error)
	Update(ctx context.Context, id string, upd repository.VideoUpdate) (*model.Video, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*model.Video, error)
	List(ctx context.Context, f repository.VideoFilter, p pagination.Params) (*pagination.Page[model.Video], error)
}

type videoService struct {
	videoRepo repository.VideoRepository
	uploader  oss.Uploader
}

func NewVideoService(videoRepo repository.VideoRepository, uploader oss.Uploader) VideoService {
	return &videoService{videoRepo: videoRepo, uploader: uploader}
}

func (s *videoService) Publish(ctx context.Context, in PublishInput) (*model.Video, error) {
	if err := ident.Check("userId", in.OwnerID); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, apperrors.Validation("title and description are required")
	}
	if in.Video == nil || in.Video.Body == nil {
		return nil, apperrors.Validation("video file is required")
	}

	v := &model.Video{
		ID:          ident.New(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		IsPublished: true,
	}

	url, err := s.upload(ctx, "video", v.ID, in.Video)
	if err != nil {
		return nil, err
	}
	v.VideoURL = url
	if in.Thumbnail != nil && in.Thumbnail.Body != nil {
		if v.Thumbnail, err = s.upload(ctx, "thumbnail", v.ID, in.Thumbnail); err != nil {
			s.removeBlob(v.VideoURL)
			return nil, err
		}
	}

	if err := s.videoRepo.Create(ctx, v); err != nil {
		s.removeBlob(v.VideoURL)
		s.removeBlob(v.Thumbnail)
		return nil, err
	}
	logger.Info("video published", zap.String("video", v.ID), zap.String("owner", v.OwnerID))
	return v, nil
}

func (s *videoService) upload(ctx context.Context, kind, videoID string, f *File) (string, error) {
	url, err := s.uploader.Upload(ctx, oss.Object{
		Key:         oss.ObjectKey(kind, videoID, f.Filename),
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        f.Body,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindInternal, "upload "+kind)
	}
	return url, nil
}

// removeBlob is best effort; an orphaned object is logged, not surfaced.
func (s *videoService) removeBlob(url string) {
	if url == "" {
		return
	}
	if err := s.uploader.Remove(context.Background(), url); err != nil {
		logger.Warn("remove uploaded object failed", zap.String("url", url), zap.Error(err))
	}
}

func (s *videoService) Get(ctx context.Context, id string) (*model.Video, error) {
	if err := ident.Check("videoId", id); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, id)
}

func (s *videoService) Update(ctx context.Context, id string, upd repository.VideoUpdate) (*model.Video, error) {
	if err := ident.Check("videoId", id); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return nil, apperrors.Validation("at least one of title, description or thumbnail is required")
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, apperrors.Validation("title must not be empty")
	}
	return s.videoRepo.Update(ctx, id, upd)
}

func (s *videoService) Delete(ctx context.Context, id string) error {
	if err := ident.Check("videoId", id); err != nil {
		return err
	}
	v, err := s.videoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeBlob(v.VideoURL)
	s.removeBlob(v.Thumbnail)
	logger.Info("video deleted", zap.String("video", id))
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, id string) (*model.Video, error) {
	if err := ident.Check("videoId", id); err != nil {
		return nil, err
	}
	return s.videoRepo.TogglePublish(ctx, id)
}

func (s *videoService) List(ctx context.Context, f repository.VideoFilter, p pagination.Params) (*pagination.Page[model.Video], error) {
	if f.OwnerID != "" {
		if err := ident.Check("userId", f.OwnerID); err != nil {
			return nil, err
		}
	}
	return s.videoRepo.List(ctx, f, p)
}
