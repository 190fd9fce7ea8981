package visit

import (
	"testing"
	"time"
)

func TestTimeSince(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "Just now"},
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{90 * time.Minute, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{36 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, c := range cases {
		if got := TimeSince(now.Add(-c.elapsed), now); got != c.expected {
			t.Fatalf("elapsed %s: expected %q, got %q", c.elapsed, c.expected, got)
		}
	}
}
