// Package chron formats durations and timestamps for chat output.
package chron

import (
	"fmt"
	"strings"
	"time"
)

type unit struct {
	name string
	size time.Duration
}

var units = []unit{
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// LongDelta renders d as "1 hour, 2 minutes and 3 seconds". Sub-second
// precision is dropped; anything under a second renders as "0 seconds".
func LongDelta(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Truncate(time.Second)

	parts := make([]string, 0, len(units))
	for _, u := range units {
		n := d / u.size
		if n == 0 {
			continue
		}
		d -= n * u.size
		parts = append(parts, plural(int64(n), u.name))
	}

	switch len(parts) {
	case 0:
		return "0 seconds"
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

// ShortDelta renders d as "1h 2m 3s".
func ShortDelta(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Truncate(time.Second)
	if d == 0 {
		return "0s"
	}

	var b strings.Builder
	for _, u := range units {
		n := d / u.size
		if n == 0 {
			continue
		}
		d -= n * u.size
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d%c", n, u.name[0])
	}
	return b.String()
}

// ShortDateAndTime formats t as "dd/mm/yy hh:mm:ss" in UTC.
func ShortDateAndTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("02/01/06 15:04:05")
}

func plural(n int64, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
