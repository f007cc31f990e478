package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskboard/internal/risk"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	f.sent = append(f.sent, c)
	f.mu.Unlock()
	return tgbotapi.Message{}, nil
}

type fakeStatus struct {
	latest *risk.Snapshot
	err    error
}

func (f *fakeStatus) Latest() *risk.Snapshot { return f.latest }

func (f *fakeStatus) Render(*risk.Snapshot) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

type fakeBriefer struct{ text string }

func (f fakeBriefer) Brief(context.Context, *risk.Snapshot) (string, error) { return f.text, nil }

func snap(t *testing.T, body string) *risk.Snapshot {
	t.Helper()
	s, err := risk.Decode([]byte(body))
	require.NoError(t, err)
	return s
}

func TestEscalation(t *testing.T) {
	low := snap(t, `{"total_risk":{"risk":15}}`)
	guarded := snap(t, `{"total_risk":{"risk":25}}`)
	guarded2 := snap(t, `{"total_risk":{"risk":39}}`)
	severe := snap(t, `{"total_risk":{"risk":90}}`)
	none := snap(t, `{"news":{"risk":90}}`)

	from, to, ok := Escalation(low, severe)
	assert.True(t, ok)
	assert.Equal(t, "LOW", from.Label)
	assert.Equal(t, "SEVERE", to.Label)

	_, _, ok = Escalation(guarded, guarded2)
	assert.False(t, ok)
	_, _, ok = Escalation(severe, low)
	assert.False(t, ok)
	_, _, ok = Escalation(nil, severe)
	assert.False(t, ok)
	_, _, ok = Escalation(none, severe)
	assert.False(t, ok)
}

func TestNotifySendsMessageAndChart(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, 42, &fakeStatus{}, fakeBriefer{text: "Tanker activity drives the rise."})
	cur := snap(t, `{"total_risk":{"risk":65},"tanker":{"risk":90,"detail":"7 detected in region"}}`)

	n.notify(cur, risk.AlertLevel(30), risk.AlertLevel(65))

	require.Len(t, s.sent, 2)
	msg, ok := s.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Alert level raised: GUARDED → HIGH")
	assert.Contains(t, msg.Text, "tanker: 90 (CRITICAL) - 7 detected in region")
	assert.Contains(t, msg.Text, "Tanker activity drives the rise.")

	photo, ok := s.sent[1].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "Total risk 65 • HIGH", photo.Caption)
}

func TestNotifySkipsChartOnError(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, 1, &fakeStatus{err: errors.New("no data")}, nil)
	n.notify(snap(t, `{"total_risk":{"risk":85}}`), risk.AlertLevel(0), risk.AlertLevel(85))
	assert.Len(t, s.sent, 1)
}

func TestHandleCommands(t *testing.T) {
	s := &fakeSender{}
	status := &fakeStatus{}
	h := NewHandlers(s, status)
	msg := func(text string) *tgbotapi.Message {
		return &tgbotapi.Message{Text: text, Chat: &tgbotapi.Chat{ID: 7}}
	}

	h.HandleMessage(msg("/risk"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "No data yet.", s.sent[0].(tgbotapi.MessageConfig).Text)

	status.latest = snap(t, `{"total_risk":{"risk":50},"news":{"risk":20,"detail":"3 articles"},"last_updated":"2026-01-01T00:00:00"}`)
	h.HandleMessage(msg("/risk@riskbot"))
	require.Len(t, s.sent, 2)
	assert.Equal(t, "Total risk 50 • ELEVATED\nnews: 20 (LOW) - 3 articles\nUpdated 2026-01-01 00:00 UTC",
		s.sent[1].(tgbotapi.MessageConfig).Text)

	h.HandleMessage(msg("/trend"))
	require.Len(t, s.sent, 3)
	_, ok := s.sent[2].(tgbotapi.PhotoConfig)
	assert.True(t, ok)

	h.HandleMessage(msg("hello"))
	assert.Len(t, s.sent, 3)
}

func TestStatusTextUpdatedLine(t *testing.T) {
	cases := map[string]string{
		`"2026-03-01T08:30:00"`:       "\nUpdated 2026-03-01 08:30 UTC",
		`"2026-03-01T08:30:00Z"`:      "\nUpdated 2026-03-01 08:30 UTC",
		`"2026-03-01T10:30:00+02:00"`: "\nUpdated 2026-03-01 08:30 UTC",
		`"yesterday"`:                 "\nUpdated yesterday",
	}
	for raw, want := range cases {
		got := statusText(snap(t, `{"total_risk":{"risk":10},"last_updated":`+raw+`}`))
		assert.True(t, strings.HasSuffix(got, want), "%s => %q", raw, got)
	}
	assert.NotContains(t, statusText(snap(t, `{"total_risk":{"risk":10}}`)), "Updated")
}
