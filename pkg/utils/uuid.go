package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// FormatReference builds a document reference like "POS-20260828-0004" from
// a prefix, the issue date and the day's running sequence number.
func FormatReference(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s-%04d", prefix, day.Format("20060102"), seq)
}

// GenerateTokenString generates an opaque single-use token for email links
func GenerateTokenString() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}
