package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "zero", at: time.Time{}, want: ""},
		{name: "future", at: now.Add(time.Hour), want: "just now"},
		{name: "seconds", at: now.Add(-30 * time.Second), want: "just now"},
		{name: "one minute", at: now.Add(-time.Minute), want: "1 minute ago"},
		{name: "minutes", at: now.Add(-5 * time.Minute), want: "5 minutes ago"},
		{name: "hours", at: now.Add(-3 * time.Hour), want: "3 hours ago"},
		{name: "one day", at: now.Add(-25 * time.Hour), want: "1 day ago"},
		{name: "old", at: now.Add(-30 * 24 * time.Hour), want: FormatFriendlyDateTime(now.Add(-30 * 24 * time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyRelativeTime(tt.at, now))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,345", FormatNumber(-12345))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 like", Pluralize(1, "like", "likes"))
	assert.Equal(t, "0 likes", Pluralize(0, "like", "likes"))
	assert.Equal(t, "2,000 likes", Pluralize(2000, "like", "likes"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hell…", TruncateText("hello world", 5))
	assert.Equal(t, "héll…", TruncateText("héllo wörld", 5))
	assert.Equal(t, "abc", TruncateText("abc", 0))
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = Dict("a")
	require.Error(t, err)

	_, err = Dict(1, 2)
	require.Error(t, err)
}
