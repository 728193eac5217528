package ingest

import (
	"regexp"
	"strconv"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// flattenExport converts a native export document into canonical raw
// records. platform must be the value returned by DetectExport.
func flattenExport(platform string, v interface{}) []domain.RawRecord {
	switch platform {
	case PlatformYouTube:
		return mapObjects(dig(v, "items"), youtubeRecord)
	case PlatformTikTok:
		return mapObjects(dig(v, "aweme_list"), tiktokRecord)
	case PlatformFacebook:
		return mapObjects(dig(v, "data"), facebookRecord)
	case PlatformInstagram:
		switch doc := v.(type) {
		case []interface{}:
			return mapObjects(doc, instagramRecord)
		case map[string]interface{}:
			if items, ok := doc["content"].([]interface{}); ok {
				return mapObjects(items, genericRecord)
			}
			if items, ok := doc["data"].([]interface{}); ok {
				return mapObjects(items, instagramRecord)
			}
			return []domain.RawRecord{instagramRecord(doc)}
		}
	}
	return nil
}

func youtubeRecord(item map[string]interface{}) domain.RawRecord {
	rec := domain.RawRecord{
		insights.KeyTitle:    dig(item, "snippet", "title"),
		insights.KeyPostedAt: dig(item, "snippet", "publishedAt"),
		insights.KeyViews:    dig(item, "statistics", "viewCount"),
		insights.KeyLikes:    dig(item, "statistics", "likeCount"),
		insights.KeyComments: dig(item, "statistics", "commentCount"),
	}
	if d, ok := dig(item, "contentDetails", "duration").(string); ok {
		if secs, ok := ParseISODuration(d); ok {
			rec[insights.KeyDurationSec] = secs
		}
	}
	return compact(rec)
}

func tiktokRecord(item map[string]interface{}) domain.RawRecord {
	rec := domain.RawRecord{
		insights.KeyTitle:    item["desc"],
		insights.KeyViews:    dig(item, "statistics", "play_count"),
		insights.KeyLikes:    dig(item, "statistics", "digg_count"),
		insights.KeyComments: dig(item, "statistics", "comment_count"),
		insights.KeyShares:   dig(item, "statistics", "share_count"),
	}
	if secs, ok := insights.ParseNumber(item["create_time"]); ok && secs > 0 {
		rec[insights.KeyPostedAt] = time.Unix(int64(secs), 0).UTC().Format(time.RFC3339)
	}
	// aweme durations are milliseconds
	if ms, ok := insights.ParseNumber(dig(item, "video", "duration")); ok && ms > 0 {
		rec[insights.KeyDurationSec] = ms / 1000
	}
	return compact(rec)
}

func facebookRecord(item map[string]interface{}) domain.RawRecord {
	rec := domain.RawRecord{
		insights.KeyTitle:    item["message"],
		insights.KeyPostedAt: item["created_time"],
		insights.KeyLikes:    dig(item, "likes", "summary", "total_count"),
		insights.KeyComments: dig(item, "comments", "summary", "total_count"),
		insights.KeyShares:   dig(item, "shares", "count"),
	}
	if metrics, ok := dig(item, "insights", "data").([]interface{}); ok {
		for _, m := range metrics {
			obj, ok := m.(map[string]interface{})
			if !ok || obj["name"] != "post_impressions" {
				continue
			}
			if values, ok := obj["values"].([]interface{}); ok && len(values) > 0 {
				rec[insights.KeyViews] = dig(values[0], "value")
			}
		}
	}
	return compact(rec)
}

func instagramRecord(item map[string]interface{}) domain.RawRecord {
	views := item["media_view_count"]
	if views == nil {
		views = item["video_views"]
	}
	return compact(domain.RawRecord{
		insights.KeyTitle:    item["caption"],
		insights.KeyPostedAt: item["timestamp"],
		insights.KeyViews:    views,
		insights.KeyLikes:    item["like_count"],
		insights.KeyComments: item["comments_count"],
	})
}

// genericRecord maps the loosely specified insights "content" export
func genericRecord(item map[string]interface{}) domain.RawRecord {
	return compact(domain.RawRecord{
		insights.KeyTitle:    first(item, "caption", "title", "description"),
		insights.KeyViews:    first(item, "views", "impressions", "reach", "plays", "video_view_count", "media_view_count"),
		insights.KeyLikes:    first(item, "likes", "like_count", "likes_count"),
		insights.KeyComments: first(item, "comments", "comments_count"),
		insights.KeyShares:   first(item, "shares", "shares_count", "saves", "saved"),
		insights.KeyPostedAt: first(item, "timestamp", "publishedAt", "publish_time", "created_time", "posted_at"),
	})
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration parses the ISO-8601 durations used by the YouTube Data
// API, such as PT4M13S or P1DT2H
func ParseISODuration(s string) (float64, bool) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, false
	}
	total := 0.0
	for i, unit := range []float64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, false
		}
		total += n * unit
	}
	return total, true
}

func mapObjects(v interface{}, conv func(map[string]interface{}) domain.RawRecord) []domain.RawRecord {
	arr, _ := v.([]interface{})
	out := make([]domain.RawRecord, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, conv(obj))
		}
	}
	return out
}

func dig(v interface{}, path ...string) interface{} {
	cur := v
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func first(item map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

// compact drops nil values so absent fields stay absent
func compact(rec domain.RawRecord) domain.RawRecord {
	for k, v := range rec {
		if v == nil {
			delete(rec, k)
		}
	}
	return rec
}
