package interval

// millisThreshold is the largest value still read as epoch seconds (year 2286).
const millisThreshold = 9999999999

// ToMillis normalizes a row store timestamp that may be stored in seconds or milliseconds.
func ToMillis(ts int64) int64 {
	if ts > millisThreshold {
		return ts
	}
	return ts * 1000
}

// ToSeconds normalizes a timestamp in seconds or milliseconds to epoch seconds.
func ToSeconds(ts int64) int64 {
	if ts > millisThreshold {
		return floorDiv(ts, 1000)
	}
	return ts
}

// MillisToSeconds floors epoch milliseconds to epoch seconds.
func MillisToSeconds(ms int64) int64 {
	return floorDiv(ms, 1000)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
