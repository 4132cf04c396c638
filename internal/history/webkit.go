package history

import "time"

// Chrome stores timestamps as microseconds since the Windows epoch
// (1601-01-01 UTC). The offset between that epoch and the Unix epoch is
// 11644473600 seconds.
const webkitToUnixOffsetSec = 11644473600

// TimeFromWebKit converts a WebKit timestamp (microseconds since 1601) to
// time.Time. A zero timestamp converts to the zero time.
func TimeFromWebKit(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	sec := us/1e6 - webkitToUnixOffsetSec
	nsec := (us % 1e6) * 1000
	return time.Unix(sec, nsec).UTC()
}

// TimeToWebKit converts a time.Time to a WebKit timestamp. The zero time
// converts to zero.
func TimeToWebKit(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return (t.Unix()+webkitToUnixOffsetSec)*1e6 + int64(t.Nanosecond())/1000
}
