package usecase

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// NormalizeDate turns a client supplied date into a UTC timestamp. Strings
// without an offset are read as UTC. Numbers are epoch milliseconds.
func NormalizeDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, ErrInvalidInput
		}
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, ErrInvalidInput
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, ErrInvalidInput
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return time.Time{}, ErrInvalidInput
		}
		return fromMillis(f)
	case float64:
		return fromMillis(d)
	case int64:
		return time.UnixMilli(d).UTC(), nil
	case int:
		return time.UnixMilli(int64(d)).UTC(), nil
	default:
		return time.Time{}, ErrInvalidInput
	}
}

func fromMillis(f float64) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > 8.64e15 {
		return time.Time{}, ErrInvalidInput
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}
