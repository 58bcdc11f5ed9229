// Package host drives the oracle script the way a request on chain would: it records the
// prepare phase asks, collects validator reports for them and hands them to execute.
package host

import (
	"sync"
)

// Ask is one external data request made during prepare.
type Ask struct {
	ExternalID   int64  `json:"external_id"`
	DataSourceID int64  `json:"data_source_id"`
	Calldata     []byte `json:"calldata"`
}

// Session is the environment of a single request. It satisfies both script phases.
type Session struct {
	mu       sync.Mutex
	minCount int64
	asks     []Ask
	reports  map[int64][]string
}

// NewSession creates a session requiring minCount validator responses.
func NewSession(minCount int64) *Session {
	return &Session{
		minCount: minCount,
		reports:  make(map[int64][]string),
	}
}

// AskExternalData records an ask.
func (s *Session) AskExternalData(externalID, dataSourceID int64, calldata []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asks = append(s.asks, Ask{
		ExternalID:   externalID,
		DataSourceID: dataSourceID,
		Calldata:     append([]byte(nil), calldata...),
	})
}

// Asks returns the recorded asks in order.
func (s *Session) Asks() []Ask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Ask(nil), s.asks...)
}

// AddReport stores one raw validator report for externalID.
func (s *Session) AddReport(externalID int64, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[externalID] = append(s.reports[externalID], raw)
}

// LoadInput returns the reports stored for externalID.
func (s *Session) LoadInput(externalID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.reports[externalID]...)
}

// MinCount returns the required number of validator responses.
func (s *Session) MinCount() int64 {
	return s.minCount
}
