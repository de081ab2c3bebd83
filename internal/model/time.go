package model

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SecondsPerDay converts rent_days into a rental term.
const SecondsPerDay = 24 * 60 * 60

// Timestamp is a point in time with whole-second resolution (unix seconds).
// Sub-second block times are truncated so every replica sees the same value.
type Timestamp int64

// TimestampOf truncates t to whole seconds.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Add returns ts shifted by whole seconds.
func (ts Timestamp) Add(secs int64) Timestamp {
	return ts + Timestamp(secs)
}

func (ts Timestamp) String() string {
	return ts.Time().Format(time.RFC3339)
}

// UnmarshalYAML accepts either RFC3339 text or unix seconds.
func (ts *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if secs, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		*ts = Timestamp(secs)
		return nil
	}
	t, err := time.Parse(time.RFC3339, node.Value)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", node.Value, err)
	}
	*ts = TimestampOf(t)
	return nil
}

func (ts Timestamp) MarshalYAML() (interface{}, error) { return ts.String(), nil }
