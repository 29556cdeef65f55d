package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampFormat(t *testing.T) {
	ts := Timestamp()

	parsed, err := time.Parse("2006-01-02T15:04:05.000Z07:00", ts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
	assert.True(t, strings.HasSuffix(ts, "Z"), "timestamps are UTC")
}
