package streamgc

import (
	"fmt"
	"time"
)

// Time is a logical timestamp marking a point in stream progress,
// measured in milliseconds. Times are totally ordered and immutable;
// the registry only stores and compares them — it never interprets
// them as wall-clock instants.
type Time int64

// Before reports whether t is strictly older than o.
func (t Time) Before(o Time) bool {
	return t < o
}

// After reports whether t is strictly newer than o.
func (t Time) After(o Time) bool {
	return t > o
}

// Add returns the time advanced by d.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d.Milliseconds())
}

// Milliseconds returns the raw millisecond value.
func (t Time) Milliseconds() int64 {
	return int64(t)
}

// String returns the time formatted as "<n> ms".
func (t Time) String() string {
	return fmt.Sprintf("%d ms", int64(t))
}

// MinTime returns the older of a and b.
func MinTime(a, b Time) Time {
	if a < b {
		return a
	}
	return b
}
