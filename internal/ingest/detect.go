package ingest

import (
	"path/filepath"
	"strings"
)

// Platform names recognised in exports and filenames
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformFacebook  = "facebook"
	PlatformUnknown   = "unknown"
)

var filenamePlatforms = []string{PlatformYouTube, PlatformInstagram, PlatformTikTok, PlatformFacebook}

// PlatformFromName infers a platform from a file name. It returns "" when
// the name mentions none of the known platforms.
func PlatformFromName(name string) string {
	base := strings.ToLower(filepath.Base(name))
	for _, p := range filenamePlatforms {
		if strings.Contains(base, p) {
			return p
		}
	}
	return ""
}

// DetectExport recognises native platform export wrappers and returns the
// platform they belong to, or "" for anything else
func DetectExport(v interface{}) string {
	switch doc := v.(type) {
	case map[string]interface{}:
		if first := firstObject(doc["items"]); first != nil && first["snippet"] != nil {
			return PlatformYouTube
		}
		if _, ok := doc["aweme_list"]; ok {
			return PlatformTikTok
		}
		if first := firstObject(doc["data"]); first != nil {
			if first["created_time"] != nil && first["likes"] != nil {
				return PlatformFacebook
			}
			if first["media_type"] != nil || hasKey(first, "like_count") {
				return PlatformInstagram
			}
		}
		if _, ok := doc["content"].([]interface{}); ok {
			return PlatformInstagram
		}
		if doc["media_type"] != nil || doc["media_url"] != nil {
			return PlatformInstagram
		}
	case []interface{}:
		if first := firstObject(doc); first != nil {
			if first["media_type"] != nil || hasKey(first, "like_count") {
				return PlatformInstagram
			}
		}
	}
	return ""
}

func firstObject(v interface{}) map[string]interface{} {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil
	}
	obj, _ := arr[0].(map[string]interface{})
	return obj
}

func hasKey(m map[string]interface{}, key string) bool {
	_, ok := m[key]
	return ok
}

func normalizePlatform(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
