package handler

import "strconv"

// userIDFrom converts the value stored by the JWT middleware into a
// numeric user ID.  Standards-conforming issuers put the subject claim
// on the wire as a JSON string, numeric claims decode as float64, and
// tests set integer types directly; all three shapes must resolve.
func userIDFrom(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		return n, err == nil
	case float64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case uint64:
		return id, true
	default:
		return 0, false
	}
}
