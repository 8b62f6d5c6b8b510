package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// NoRecord is the best time reported when nothing valid has been stored.
// Any real match time compares as better.
const NoRecord = time.Duration(math.MaxInt64)

// maxRecord is the largest duration representable as mm:ss.
const maxRecord = 59*time.Minute + 59*time.Second

// RecordStore persists the single best-time record of a game.
type RecordStore interface {
	// ReadBestTime returns the stored best time, or NoRecord when the record
	// is missing or malformed.
	ReadBestTime() time.Duration

	// WriteBestTime replaces the stored record.
	WriteBestTime(d time.Duration) error
}

// FormatBestTime renders a duration as "mm:ss". Seconds are truncated and
// durations past 59:59 are clamped to it.
func FormatBestTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d > maxRecord {
		d = maxRecord
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ParseBestTime parses an "mm:ss" record. Anything else reports ok=false.
func ParseBestTime(s string) (d time.Duration, ok bool) {
	mm, ss, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}

	minutes, ok := twoDigits(mm)
	if !ok {
		return 0, false
	}
	seconds, ok := twoDigits(ss)
	if !ok || seconds > 59 {
		return 0, false
	}

	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, true
}

// twoDigits parses exactly two ASCII digits.
func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// DisplayBestTime formats a best time for humans, showing "--:--" for
// NoRecord.
func DisplayBestTime(d time.Duration) string {
	if d == NoRecord {
		return "--:--"
	}
	return FormatBestTime(d)
}
