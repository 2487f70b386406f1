package oss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "video/abc/video.mp4", ObjectKey("video", "abc", "My Clip.MP4"))
	assert.Equal(t, "thumbnail/abc/thumbnail", ObjectKey("thumbnail", "abc", "cover"))
}

func TestURLRoundTrip(t *testing.T) {
	u := &MinioUploader{bucket: "videos", baseURL: "http://cdn.local"}

	url := u.URL("video/abc/video.mp4")
	assert.Equal(t, "http://cdn.local/videos/video/abc/video.mp4", url)

	key, ok := u.keyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "video/abc/video.mp4", key)

	_, ok = u.keyFromURL("http://elsewhere/videos/x")
	assert.False(t, ok)
}
