package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_RoundTrip(t *testing.T) {
	parsed, err := ParseDate("1965-08-01")
	require.NoError(t, err)

	assert.Equal(t, "1965-08-01", FormatDate(parsed))
	assert.Equal(t, time.UTC, parsed.Location())
	assert.Zero(t, parsed.Hour())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "1965", "01-08-1965", "1965-13-01", "yesterday"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2021, 3, 14, 15, 9, 26, 535, time.FixedZone("X", 3600))
	got := DateOnly(stamp)

	assert.Equal(t, time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC), got)
}
