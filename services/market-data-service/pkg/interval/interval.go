// Package interval is the period calendar: the fixed set of candle granularities
// and the mapping from an absolute timestamp to the start of its bucket.
package interval

import (
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
)

// Interval is a named, fixed-width candle granularity.
type Interval struct {
	Name    string
	Seconds int64
}

// Supported intervals. 1d and 1w are plain epoch multiples, not calendar aligned.
var (
	Interval1m  = Interval{Name: "1m", Seconds: 60}
	Interval5m  = Interval{Name: "5m", Seconds: 300}
	Interval15m = Interval{Name: "15m", Seconds: 900}
	Interval1h  = Interval{Name: "1h", Seconds: 3600}
	Interval4h  = Interval{Name: "4h", Seconds: 14400}
	Interval1d  = Interval{Name: "1d", Seconds: 86400}
	Interval1w  = Interval{Name: "1w", Seconds: 604800}
)

// AllIntervals lists every supported interval, shortest first.
var AllIntervals = []Interval{
	Interval1m, Interval5m, Interval15m,
	Interval1h, Interval4h, Interval1d, Interval1w,
}

var intervalRegistry = make(map[string]Interval, len(AllIntervals))

func init() {
	for _, interval := range AllIntervals {
		intervalRegistry[interval.Name] = interval
	}
}

// GetInterval returns an interval by name or an UnsupportedPeriod error.
func GetInterval(name string) (Interval, error) {
	interval, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, errors.NewUnsupportedPeriod(name)
	}
	return interval, nil
}

// IsValidInterval checks if interval name is supported
func IsValidInterval(name string) bool {
	_, exists := intervalRegistry[name]
	return exists
}

// GetAllIntervalNames returns all supported interval names
func GetAllIntervalNames() []string {
	names := make([]string, 0, len(AllIntervals))
	for _, interval := range AllIntervals {
		names = append(names, interval.Name)
	}
	return names
}

// SecondsByName returns the width of every supported interval keyed by name.
func SecondsByName() map[string]int64 {
	widths := make(map[string]int64, len(AllIntervals))
	for _, interval := range AllIntervals {
		widths[interval.Name] = interval.Seconds
	}
	return widths
}

// ParseIntervals resolves a list of names, failing on the first unknown one.
func ParseIntervals(names []string) ([]Interval, error) {
	intervals := make([]Interval, 0, len(names))
	for _, name := range names {
		interval, err := GetInterval(name)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// BucketStart returns the start of the bucket containing timestampSec for the named interval.
func BucketStart(timestampSec int64, name string) (int64, error) {
	interval, err := GetInterval(name)
	if err != nil {
		return 0, err
	}
	return interval.BucketStart(timestampSec), nil
}

// BucketStart returns floor(timestampSec / width) * width. Floors toward negative
// infinity so pre-epoch timestamps still satisfy start <= t < start + width.
func (i Interval) BucketStart(timestampSec int64) int64 {
	rem := timestampSec % i.Seconds
	if rem < 0 {
		rem += i.Seconds
	}
	return timestampSec - rem
}

// BucketRange returns the half-open range [start, end) of the bucket containing timestampSec.
func (i Interval) BucketRange(timestampSec int64) (start, end int64) {
	start = i.BucketStart(timestampSec)
	return start, start + i.Seconds
}

// IsInBucket reports whether two timestamps fall into the same bucket.
func (i Interval) IsInBucket(a, b int64) bool {
	return i.BucketStart(a) == i.BucketStart(b)
}

// Duration returns the width as a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.Seconds) * time.Second
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return i.Name
}
