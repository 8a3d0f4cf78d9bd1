package models

import (
	"net/url"
	"strings"
)

// Thumbnail sizes served by img.youtube.com.
const (
	ThumbnailMedium = "mqdefault"
	ThumbnailMax    = "maxresdefault"
)

const placeholderThumbnail = "https://via.placeholder.com/320x180/6366f1/ffffff?text=Video"

var youtubeHosts = map[string]bool{
	"www.youtube.com": true,
	"youtube.com":     true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// IsYouTubeURL reports whether raw is an absolute YouTube URL.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	return youtubeHosts[strings.ToLower(u.Host)]
}

// VideoID extracts the video id from a watch URL (v= query) or a youtu.be short link.
//
// Returns an empty string when no id is present.
func VideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.EqualFold(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return ""
}

// ThumbnailURL builds the thumbnail image URL for the note's video, or a placeholder when the id is unknown.
func ThumbnailURL(raw, size string) string {
	id := VideoID(raw)
	if id == "" {
		return placeholderThumbnail
	}
	if size == "" {
		size = ThumbnailMedium
	}
	return "https://img.youtube.com/vi/" + id + "/" + size + ".jpg"
}
