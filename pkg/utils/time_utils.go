package utils

import "time"

const secondsPerDay = 24 * 60 * 60

// Unix seconds everywhere; the ledger stores grant and expiry instants as
// int64 epochs so comparisons never involve timezone math.
func NowUnixSeconds() int64 { return time.Now().Unix() }

func AddDays(unixSeconds int64, days int) int64 {
	return unixSeconds + int64(days)*secondsPerDay
}

func FormatRFC3339(unixSeconds int64) string {
	if unixSeconds <= 0 {
		return ""
	}
	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}
