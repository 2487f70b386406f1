// Package oss is the blob-storage collaborator used when publishing videos:
// it stores an upload and returns the public URL.
package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/config"
	"github.com/d60-Lab/mediahub/pkg/logger"
)

// Object describes an upload.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores objects and returns their URL.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
	Remove(ctx context.Context, url string) error
}

// MinioUploader 基于 MinIO 的上传实现
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	region  string
	baseURL string
	timeout time.Duration
}

// NewMinioUploader 创建客户端并确保 bucket 存在
func NewMinioUploader(ctx context.Context, cfg config.StorageConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	u := &MinioUploader{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		timeout: cfg.Timeout,
	}
	if u.baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		u.baseURL = scheme + "://" + cfg.Endpoint
	}
	if err := u.ensureBucket(ctx); err != nil {
		return nil, err
	}
	logger.Info("minio ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return u, nil
}

func (u *MinioUploader) ensureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: u.region}); err != nil {
		return fmt.Errorf("create bucket error: %w", err)
	}
	return nil
}

// Upload 上传对象，返回可访问的 URL
func (u *MinioUploader) Upload(ctx context.Context, obj Object) (string, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	_, err := u.client.PutObject(ctx, u.bucket, obj.Key, obj.Body, size, minio.PutObjectOptions{ContentType: obj.ContentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", obj.Key, err)
	}
	return u.URL(obj.Key), nil
}

// Remove deletes the object behind a URL previously returned by Upload.
func (u *MinioUploader) Remove(ctx context.Context, url string) error {
	key, ok := u.keyFromURL(url)
	if !ok {
		return nil
	}
	return u.client.RemoveObject(ctx, u.bucket, key, minio.RemoveObjectOptions{})
}

// URL builds the public URL of key.
func (u *MinioUploader) URL(key string) string {
	return u.baseURL + "/" + path.Join(u.bucket, key)
}

func (u *MinioUploader) keyFromURL(url string) (string, bool) {
	prefix := u.baseURL + "/" + u.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// ObjectKey builds the storage key for a video asset, e.g.
// video/<videoID>/video.mp4.
func ObjectKey(kind, videoID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(kind, videoID, kind+ext)
}
