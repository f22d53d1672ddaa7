package utils

import (
	"regexp"
	"strings"
)

var (
	// https://www.youtube.com/watch?v=VIDEO_ID, https://youtu.be/VIDEO_ID
	youtubeWatchRegex = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]+)`)
	// https://vimeo.com/VIDEO_ID, https://player.vimeo.com/video/VIDEO_ID
	vimeoRegex = regexp.MustCompile(`(?:player\.vimeo\.com/video/|vimeo\.com/)(\d+)`)
)

// NormalizeVideoURL rewrites YouTube watch/short links and Vimeo links into
// their embeddable form. Unrecognized URLs pass through unchanged, and
// already-normalized URLs are fixed points. Applied when a lesson is saved,
// never at read time.
func NormalizeVideoURL(url string) string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return url
	}

	if match := youtubeWatchRegex.FindStringSubmatch(trimmed); match != nil {
		return "https://www.youtube.com/embed/" + match[1]
	}

	// Already an embed URL
	if strings.Contains(trimmed, "youtube.com/embed/") {
		return trimmed
	}

	if match := vimeoRegex.FindStringSubmatch(trimmed); match != nil {
		return "https://player.vimeo.com/video/" + match[1]
	}

	return trimmed
}
