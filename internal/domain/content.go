package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WordsPerMinute is the reading speed used to derive Post.ReadingTime.
const WordsPerMinute = 200

// GenerateSlug lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at both ends.
func GenerateSlug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// CalculateReadingTime returns the minutes needed to read content, rounded
// up, never less than one.
func CalculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NewID returns a record identifier made of the current unix milliseconds
// followed by a random suffix. Collisions are unlikely but not impossible.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + suffix
}
