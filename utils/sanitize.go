package utils

import "github.com/microcosm-cc/bluemonday"

// Community posts and journal notes are rendered back to other clients, so
// everything user-written is stripped down to safe markup.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
