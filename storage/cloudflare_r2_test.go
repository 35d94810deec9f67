package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	cases := []struct {
		base string
		key  string
		want string
	}{
		{"https://cdn.example.com", "players/1/a.jpg", "https://cdn.example.com/players/1/a.jpg"},
		{"https://cdn.example.com/", "/players/1/a.jpg", "https://cdn.example.com/players/1/a.jpg"},
		{"https://cdn.example.com/sinuca", "players/1/a.jpg", "https://cdn.example.com/sinuca/players/1/a.jpg"},
	}
	for _, tc := range cases {
		base, err := parsePublicBaseURL(tc.base)
		require.NoError(t, err)
		assert.Equal(t, tc.want, publicURL(base, tc.key))
	}

	base, err := parsePublicBaseURL("https://cdn.example.com")
	require.NoError(t, err)
	assert.Empty(t, publicURL(base, ""))
}

func TestParsePublicBaseURL_Invalid(t *testing.T) {
	_, err := parsePublicBaseURL("cdn.example.com")
	assert.Error(t, err)
}

func TestNewCloudflareR2Uploader_IncompleteConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{BucketName: "photos"}, logger)
	assert.ErrorIs(t, err, ErrR2NotConfigured)
}

func TestPlayerPhotoKey(t *testing.T) {
	id := uuid.MustParse("6f1c1c52-0000-4000-8000-000000000001")
	first := PlayerPhotoKey(id, ".png")
	second := PlayerPhotoKey(id, ".png")

	assert.True(t, strings.HasPrefix(first, "players/"+id.String()+"/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.NotEqual(t, first, second)
}
