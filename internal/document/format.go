package document

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a nullable byte count for display ("2.4 MB").
// Display only; sorting uses the raw SizeBytes value.
func FormatSize(sizeBytes *int64) string {
	if sizeBytes == nil || *sizeBytes < 0 {
		return "Unknown size"
	}

	return humanize.Bytes(uint64(*sizeBytes))
}

// FormatRelativeTime renders a timestamp as a relative string
// ("2 hours ago"). Remote timestamps are already normalized to UTC by the
// mapper. A timestamp slightly in the future (clock skew between server
// and client) reads as "now".
func FormatRelativeTime(t *time.Time) string {
	if t == nil {
		return "Unknown date"
	}

	return humanize.Time(*t)
}
