package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskboard/internal/risk"
)

type stubFetcher struct {
	s   *risk.Snapshot
	err error
}

func (f stubFetcher) Fetch(context.Context) (*risk.Snapshot, error) { return f.s, f.err }

func decode(t *testing.T, body string) *risk.Snapshot {
	t.Helper()
	s, err := risk.Decode([]byte(body))
	require.NoError(t, err)
	return s
}

func TestInstrumentCountsResults(t *testing.T) {
	m := New(prometheus.NewRegistry())
	want := decode(t, `{"total_risk":{"risk":10}}`)

	got, err := m.Instrument(stubFetcher{s: want}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = m.Instrument(stubFetcher{err: errors.New("timeout")}).Fetch(context.Background())
	assert.Error(t, err)
	_, _ = m.Instrument(stubFetcher{err: errors.New("timeout")}).Fetch(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fetchDuration))
}

func TestSnapshotChangedSetsGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SnapshotChanged(nil, decode(t, `{"total_risk":{"risk":64.6},"news":{"risk":30},"tanker":{"risk":80}}`))
	assert.Equal(t, 65.0, testutil.ToFloat64(m.totalRisk))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.alertLevel))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.signalRisk.WithLabelValues("news")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.signalRisk))

	m.SnapshotChanged(nil, decode(t, `{"news":{"risk":5}}`))
	assert.Equal(t, 1, testutil.CollectAndCount(m.signalRisk))
	assert.Equal(t, 65.0, testutil.ToFloat64(m.totalRisk))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rendered))
}
