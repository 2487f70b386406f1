package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/mediahub/internal/model"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/ident"
	"github.com/d60-Lab/mediahub/pkg/pagination"
)

// CommentService 评论服务
type CommentService interface {
	ListByVideo(ctx context.Context, videoID string, p pagination.Params) (*pagination.Page[model.Comment], error)
	Create(ctx context.Context, videoID, userID, content string) (*model.Comment, error)
	Update(ctx context.Context, id, content string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *commentService) ListByVideo(ctx context.Context, videoID string, p pagination.Params) (*pagination.Page[model.Comment], error) {
	if err := ident.Check("videoId", videoID); err != nil {
		return nil, err
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByVideo(ctx, videoID, p)
}

func (s *commentService) Create(ctx context.Context, videoID, userID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if videoID == "" || userID == "" || content == "" {
		return nil, apperrors.Validation("videoId, userId and content are required")
	}
	if err := ident.CheckAll("videoId", videoID, "userId", userID); err != nil {
		return nil, err
	}
	if err := s.requireVideo(ctx, videoID); err != nil {
		return nil, err
	}
	c := &model.Comment{ID: ident.New(), VideoID: videoID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Update(ctx context.Context, id, content string) (*model.Comment, error) {
	if err := ident.Check("commentId", id); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content is required")
	}
	return s.commentRepo.UpdateContent(ctx, id, content)
}

func (s *commentService) Delete(ctx context.Context, id string) error {
	if err := ident.Check("commentId", id); err != nil {
		return err
	}
	_, err := s.commentRepo.Delete(ctx, id)
	return err
}

func (s *commentService) requireVideo(ctx context.Context, videoID string) error {
	ok, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("video", videoID)
	}
	return nil
}
