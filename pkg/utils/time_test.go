package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowRFC3339_RoundTrips(t *testing.T) {
	stamp := NowRFC3339()

	parsed, err := ParseRFC3339(stamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestParseRFC3339_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "not-a-timestamp", "2026-08-28", "28/08/2026 12:00"} {
		_, err := ParseRFC3339(input)
		assert.Error(t, err, "input %q", input)
	}
}
