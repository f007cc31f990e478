package risk

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Decode parses a polled document. Every top-level key is optional.
func Decode(body []byte) (*Snapshot, error) {
	var wire struct {
		TotalRisk   *Aggregate `json:"total_risk"`
		News        *Signal    `json:"news"`
		Aviation    *Signal    `json:"aviation"`
		Tanker      *Signal    `json:"tanker"`
		Pentagon    *Signal    `json:"pentagon"`
		Polymarket  *Signal    `json:"polymarket"`
		Weather     *Signal    `json:"weather"`
		LastUpdated string     `json:"last_updated"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	s := &Snapshot{
		TotalRisk:   wire.TotalRisk,
		Signals:     map[SignalKey]*Signal{},
		LastUpdated: wire.LastUpdated,
		doc:         doc,
	}
	for key, sig := range map[SignalKey]*Signal{
		News:       wire.News,
		Aviation:   wire.Aviation,
		Tanker:     wire.Tanker,
		Pentagon:   wire.Pentagon,
		Polymarket: wire.Polymarket,
		Weather:    wire.Weather,
	} {
		if sig != nil {
			s.Signals[key] = sig
		}
	}
	return s, nil
}

// Equal reports whether two snapshots decode to the same JSON document.
// Key order and whitespace do not matter.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s.doc, other.doc)
}

// Signal returns the named signal, or nil when the snapshot lacks it.
func (s *Snapshot) Signal(key SignalKey) *Signal {
	if s == nil {
		return nil
	}
	return s.Signals[key]
}

// Raw returns the document re-encoded as JSON.
func (s *Snapshot) Raw() ([]byte, error) {
	return json.Marshal(s.doc)
}
