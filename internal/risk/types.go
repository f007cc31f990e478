package risk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// SignalKey names one contributing risk category.
type SignalKey string

const (
	News       SignalKey = "news"
	Aviation   SignalKey = "aviation"
	Tanker     SignalKey = "tanker"
	Pentagon   SignalKey = "pentagon"
	Polymarket SignalKey = "polymarket"
	Weather    SignalKey = "weather"
)

// SignalKeys is the closed set of signals in display order.
var SignalKeys = []SignalKey{News, Aviation, Tanker, Pentagon, Polymarket, Weather}

// Snapshot is one polled document. Treat it as immutable once decoded.
type Snapshot struct {
	TotalRisk   *Aggregate
	Signals     map[SignalKey]*Signal
	LastUpdated string

	// doc is the generic decoding used for deep equality.
	doc any
}

// Aggregate is the composite risk series.
type Aggregate struct {
	Risk          float64        `json:"risk"`
	History       []HistoryPoint `json:"history"`
	ElevatedCount *int           `json:"elevated_count,omitempty"`
}

// Score returns the current risk rounded to an integer.
func (a *Aggregate) Score() int { return round(a.Risk) }

// Signal is one category's current value, detail line and sparkline history.
type Signal struct {
	Risk    float64   `json:"risk"`
	Detail  string    `json:"detail"`
	History []float64 `json:"history"`
}

// Score returns the current risk rounded to an integer.
func (s *Signal) Score() int { return round(s.Risk) }

// HistoryPoint is one entry of the aggregate trend.
type HistoryPoint struct {
	Risk      float64
	Timestamp Timestamp
	Pinned    bool
}

// UnmarshalJSON accepts {risk, timestamp?, pinned?} objects and bare numbers.
// Optional fields that do not parse are dropped rather than reported.
func (p *HistoryPoint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		var v float64
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*p = HistoryPoint{Risk: v}
		return nil
	}
	var raw struct {
		Risk      float64         `json:"risk"`
		Timestamp Timestamp       `json:"timestamp"`
		Pinned    json.RawMessage `json:"pinned"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = HistoryPoint{
		Risk:      raw.Risk,
		Timestamp: raw.Timestamp,
		Pinned:    bytes.Equal(bytes.TrimSpace(raw.Pinned), []byte("true")),
	}
	return nil
}

// Timestamp is an optional instant. The zero value means absent.
type Timestamp struct {
	time.Time
}

// Valid reports whether a timestamp was present and parsed.
func (t Timestamp) Valid() bool { return !t.IsZero() }

// UnmarshalJSON accepts an ISO-8601-ish string or epoch milliseconds.
// Anything else leaves the timestamp absent.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if parsed, err := ParseTimestamp(s); err == nil {
			t.Time = parsed
		}
		return nil
	}
	if ms, err := strconv.ParseFloat(string(b), 64); err == nil && ms > 0 {
		t.Time = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
