package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "news": {"risk": 42, "detail": "31 articles, 4 critical", "history": [30, 35, 42]},
  "weather": {"risk": 10, "detail": "Clear", "history": []},
  "total_risk": {
    "risk": 37,
    "elevated_count": 2,
    "history": [
      {"risk": 30, "timestamp": 1767225600000, "pinned": true},
      {"risk": 33, "timestamp": "2026-01-01T01:00:00"},
      {"risk": 37, "pinned": "yes", "timestamp": {"bad": 1}},
      41
    ]
  },
  "last_updated": "2026-01-01T01:05:00.123456"
}`

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(sample))
	require.NoError(t, err)

	require.NotNil(t, s.TotalRisk)
	assert.Equal(t, 37, s.TotalRisk.Score())
	require.NotNil(t, s.TotalRisk.ElevatedCount)
	assert.Equal(t, 2, *s.TotalRisk.ElevatedCount)

	h := s.TotalRisk.History
	require.Len(t, h, 4)
	assert.True(t, h[0].Pinned)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), h[0].Timestamp.Time)
	assert.Equal(t, time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC), h[1].Timestamp.Time)
	assert.False(t, h[2].Pinned)
	assert.False(t, h[2].Timestamp.Valid())
	assert.Equal(t, 41.0, h[3].Risk)

	news := s.Signal(News)
	require.NotNil(t, news)
	assert.Equal(t, "31 articles, 4 critical", news.Detail)
	assert.Equal(t, []float64{30, 35, 42}, news.History)

	weather := s.Signal(Weather)
	require.NotNil(t, weather)
	assert.NotNil(t, weather.History)
	assert.Empty(t, weather.History)

	assert.Nil(t, s.Signal(Tanker))
	assert.Equal(t, "2026-01-01T01:05:00.123456", s.LastUpdated)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`<html>`))
	assert.Error(t, err)
}

func TestEqualIgnoresFormatting(t *testing.T) {
	a, err := Decode([]byte(`{"news":{"risk":1,"history":[1,2]},"last_updated":"x"}`))
	require.NoError(t, err)
	b, err := Decode([]byte("{\n \"last_updated\": \"x\",\n \"news\": {\"history\": [1, 2], \"risk\": 1}\n}"))
	require.NoError(t, err)
	c, err := Decode([]byte(`{"news":{"risk":1,"history":[1,2]},"last_updated":"y"}`))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Snapshot)(nil).Equal(nil))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, in := range []string{
		"2026-03-04T05:06:07",
		"2026-03-04T05:06:07Z",
		"2026-03-04T05:06:07+00:00",
		"2026-03-04T00:06:07-05:00",
		"2026-03-04 05:06:07",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	got, err := ParseTimestamp("2026-03-04T05:06:07.250")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, got.Sub(want))

	_, err = ParseTimestamp("")
	assert.Error(t, err)
	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
