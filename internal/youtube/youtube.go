// Package youtube turns the many shapes of a YouTube reference into a single video id.
// Write-time canonicalization and read-time embedding share ExtractVideoID, so any
// reference accepted when saving can always be embedded later.
package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="
	embedURLPrefix = "https://www.youtube.com/embed/"
)

var (
	bareIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	idPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

	// tried in order after the v query parameter
	pathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^/embed/([^/?#]+)`),
		regexp.MustCompile(`^/shorts/([^/?#]+)`),
		regexp.MustCompile(`^/live/([^/?#]+)`),
	}
)

// Reference is a validated YouTube video.
type Reference struct {
	ID           string
	CanonicalURL string
}

// ExtractVideoID returns the video id referenced by input. Ids outside [A-Za-z0-9_-]
// are rejected so the canonical URL always re-extracts to the same id.
func ExtractVideoID(input string) (string, bool) {
	id, ok := extractCandidate(input)
	if !ok || !idPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

func extractCandidate(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	if bareIDPattern.MatchString(trimmed) {
		return trimmed, true
	}

	candidate := trimmed
	if !schemePattern.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil || parsed == nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	switch host {
	case "youtu.be":
		segment := strings.SplitN(strings.TrimPrefix(parsed.Path, "/"), "/", 2)[0]
		if segment == "" {
			return "", false
		}
		return segment, true
	case "youtube.com", "m.youtube.com":
		if v := parsed.Query().Get("v"); v != "" {
			return v, true
		}
		for _, pattern := range pathPatterns {
			if match := pattern.FindStringSubmatch(parsed.Path); match != nil {
				return match[1], true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// Normalize validates input and returns its canonical watch URL.
func Normalize(input string) (Reference, bool) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return Reference{}, false
	}
	return Reference{ID: id, CanonicalURL: watchURLPrefix + id}, true
}

// EmbedURL returns the iframe URL for input.
func EmbedURL(input string) (string, bool) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return "", false
	}
	return embedURLPrefix + id, true
}

// ThumbnailURL returns the high quality still published for the video.
func ThumbnailURL(input string) (string, bool) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return "", false
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg", true
}
