// Package youtube turns pasted YouTube links and embed snippets into embeddable URLs
package youtube

import (
	"regexp"
	"strings"
)

const (
	// VideoIDLength is the length of every YouTube video identifier
	VideoIDLength = 11

	embedBase = "https://www.youtube.com/embed/"
)

var (
	// The greedy prefix makes the last marker in the input win.
	videoIDPattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
	iframeSrc      = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// VideoID extracts the 11-character video identifier from a YouTube URL.
// The second result is false when no identifier could be found.
func VideoID(input string) (string, bool) {
	match := videoIDPattern.FindStringSubmatch(input)
	if match == nil || len(match[2]) != VideoIDLength {
		return "", false
	}
	return match[2], true
}

// EmbedURL builds the canonical embed URL for a video, with branding and related videos suppressed
func EmbedURL(id, origin string) string {
	return embedBase + id + "?origin=" + origin + "&modestbranding=1&rel=0"
}

// Normalize converts input into an embeddable URL.
//
// Recognized YouTube URLs become EmbedURL(id, origin). A pasted <iframe> snippet yields its src value.
// Anything else is returned unchanged and left for the player to reject.
func Normalize(input, origin string) string {
	if input == "" {
		return ""
	}

	if id, ok := VideoID(input); ok {
		return EmbedURL(id, origin)
	}

	if strings.Contains(input, "<iframe") {
		if match := iframeSrc.FindStringSubmatch(input); match != nil {
			return match[1]
		}
	}

	return input
}

