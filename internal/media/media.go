// Package media validates user-supplied photos and image prompts before any
// of them reach the backend.
package media

import (
	"net/http"
	"slices"
	"strings"
)

// MaxFileSize is the largest photo accepted for upload.
const MaxFileSize = 10 * 1024 * 1024

// Prompt length bounds, measured after trimming.
const (
	MinPromptLen = 10
	MaxPromptLen = 500
)

var (
	allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}
	styles       = []string{"artistic", "cartoon", "photographic", "painting", "sketch"}
)

// File is an uploaded photo held in memory.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Size returns the file length in bytes.
func (f *File) Size() int { return len(f.Content) }

// ValidationError is a user-facing validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// DetectType returns the declared content type, or a sniffed one when none was sent.
func DetectType(f *File) string {
	ct := strings.TrimSpace(f.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(f.Content)
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// ValidateFile accepts JPEG, PNG and WebP images up to MaxFileSize.
func ValidateFile(f *File) error {
	if f == nil || (f.Name == "" && len(f.Content) == 0) {
		return invalid("Please select a file")
	}
	if !slices.Contains(allowedTypes, DetectType(f)) {
		return invalid("Please select a valid image file (JPEG, PNG, or WebP)")
	}
	if f.Size() > MaxFileSize {
		return invalid("File size must be less than 10MB")
	}
	return nil
}

// ValidatePrompt checks a text-to-image request and returns the trimmed prompt.
// An empty style is allowed.
func ValidatePrompt(prompt, style string) (string, error) {
	p := strings.TrimSpace(prompt)
	switch n := len([]rune(p)); {
	case n == 0:
		return "", invalid("Please enter a description for your image")
	case n < MinPromptLen:
		return "", invalid("Please provide a more detailed description (at least 10 characters)")
	case n > MaxPromptLen:
		return "", invalid("Prompt must be less than 500 characters")
	}
	if style != "" && !slices.Contains(styles, style) {
		return "", invalid("Invalid style")
	}
	return p, nil
}
