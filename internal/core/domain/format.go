package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in the largest binary unit not exceeding
// it, rounded to two decimals with trailing zeros dropped: 1536 → "1.5 KB",
// 1048576 → "1 MB". Zero is "0 Bytes".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return strconv.FormatInt(bytes, 10) + " Bytes"
	}

	unit := 0
	scale := int64(1)
	for unit < len(sizeUnits)-1 && bytes >= scale*1024 {
		scale *= 1024
		unit++
	}

	value := math.Round(float64(bytes)/float64(scale)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}

// TimestampLayout is how timestamps are displayed.
const TimestampLayout = "2006-01-02 15:04"

// FormatTimestamp renders t in local time, or "N/A" for the zero time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(TimestampLayout)
}

// zonelessLayouts are ISO-8601 forms without an offset, as produced by
// naive datetime serialisers. They are interpreted in local time.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp with or without a zone offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	var lastErr error
	for _, layout := range zonelessLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
