package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
)

const youtubeExport = `{
  "kind": "youtube#videoListResponse",
  "items": [
    {
      "snippet": {"title": "Launch day", "publishedAt": "2024-05-01T15:04:05Z"},
      "statistics": {"viewCount": "1500", "likeCount": "120", "commentCount": "30"},
      "contentDetails": {"duration": "PT4M13S"}
    },
    {
      "snippet": {"title": "Behind the scenes"},
      "statistics": {"viewCount": "800"}
    }
  ]
}`

const tiktokExport = `{
  "aweme_list": [
    {
      "desc": "dance",
      "create_time": 1714575845,
      "statistics": {"play_count": 9000, "digg_count": 700, "comment_count": 40, "share_count": 12},
      "video": {"duration": 15000}
    }
  ]
}`

const facebookExport = `{
  "data": [
    {
      "message": "New post",
      "created_time": "2024-05-01T10:00:00+0000",
      "likes": {"summary": {"total_count": 15}},
      "comments": {"summary": {"total_count": 3}},
      "shares": {"count": 2},
      "insights": {"data": [{"name": "post_impressions", "values": [{"value": 640}]}]}
    }
  ]
}`

const instagramExport = `{
  "data": [
    {"caption": "sunset", "timestamp": "2024-05-02T18:00:00+0000", "like_count": 55, "comments_count": 4, "media_type": "IMAGE"},
    {"caption": "reel", "like_count": 90, "media_view_count": 2000, "media_type": "VIDEO"}
  ]
}`

func TestDetectExport(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"youtube", youtubeExport, PlatformYouTube},
		{"tiktok", tiktokExport, PlatformTikTok},
		{"facebook", facebookExport, PlatformFacebook},
		{"instagram data", instagramExport, PlatformInstagram},
		{"instagram array", `[{"like_count": 1}]`, PlatformInstagram},
		{"instagram content", `{"content": [{"likes": 3}]}`, PlatformInstagram},
		{"instagram media object", `{"media_type": "IMAGE", "like_count": 3}`, PlatformInstagram},
		{"canonical records", `[{"views": 1}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode("export.json", []byte(tt.body))
			require.NoError(t, err)
			if tt.expected == "" {
				assert.NotContains(t, in.Platforms, PlatformYouTube)
				return
			}
			assert.Contains(t, in.Platforms, tt.expected)
		})
	}
}

func TestYouTubeExport(t *testing.T) {
	in, err := Decode("takeout.json", []byte(youtubeExport))
	require.NoError(t, err)
	require.Len(t, in.Platforms[PlatformYouTube], 2)

	r := insights.NormalizeRecord(PlatformYouTube, in.Platforms[PlatformYouTube][0])
	assert.Equal(t, "Launch day", r.Title)
	assert.Equal(t, 1500.0, r.Views)
	assert.Equal(t, 120.0, r.Likes)
	assert.Equal(t, 30.0, r.Comments)
	assert.Equal(t, 253.0, r.DurationSeconds)
	require.True(t, r.HasTimestamp())
	assert.Equal(t, 2024, r.Timestamp.Year())

	second := insights.NormalizeRecord(PlatformYouTube, in.Platforms[PlatformYouTube][1])
	assert.False(t, second.HasTimestamp())
	assert.Zero(t, second.Likes)
}

func TestTikTokExport(t *testing.T) {
	in, err := Decode("aweme.json", []byte(tiktokExport))
	require.NoError(t, err)
	require.Len(t, in.Platforms[PlatformTikTok], 1)

	r := insights.NormalizeRecord(PlatformTikTok, in.Platforms[PlatformTikTok][0])
	assert.Equal(t, "dance", r.Title)
	assert.Equal(t, 9000.0, r.Views)
	assert.Equal(t, 700.0, r.Likes)
	assert.Equal(t, 12.0, r.Shares)
	assert.Equal(t, 15.0, r.DurationSeconds)
	require.True(t, r.HasTimestamp())
	assert.Equal(t, int64(1714575845), r.Timestamp.Unix())
}

func TestFacebookExport(t *testing.T) {
	in, err := Decode("page.json", []byte(facebookExport))
	require.NoError(t, err)
	require.Len(t, in.Platforms[PlatformFacebook], 1)

	r := insights.NormalizeRecord(PlatformFacebook, in.Platforms[PlatformFacebook][0])
	assert.Equal(t, "New post", r.Title)
	assert.Equal(t, 640.0, r.Views)
	assert.Equal(t, 15.0, r.Likes)
	assert.Equal(t, 3.0, r.Comments)
	assert.Equal(t, 2.0, r.Shares)
}

func TestInstagramExport(t *testing.T) {
	in, err := Decode("media.json", []byte(instagramExport))
	require.NoError(t, err)
	require.Len(t, in.Platforms[PlatformInstagram], 2)

	first := insights.NormalizeRecord(PlatformInstagram, in.Platforms[PlatformInstagram][0])
	assert.Equal(t, "sunset", first.Title)
	assert.Equal(t, 55.0, first.Likes)
	assert.Zero(t, first.Views)

	second := insights.NormalizeRecord(PlatformInstagram, in.Platforms[PlatformInstagram][1])
	assert.Equal(t, 2000.0, second.Views)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"PT4M13S", 253, true},
		{"PT1H", 3600, true},
		{"P1DT2H", 93600, true},
		{"PT0.5S", 0.5, true},
		{"PT", 0, false},
		{"P", 0, false},
		{"4:13", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseISODuration(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPlatformFromName(t *testing.T) {
	assert.Equal(t, PlatformYouTube, PlatformFromName("/data/YouTube_export.json"))
	assert.Equal(t, PlatformTikTok, PlatformFromName("tiktok.json"))
	assert.Equal(t, "", PlatformFromName("posts.json"))
	assert.Equal(t, "", PlatformFromName("stdin"))
}
