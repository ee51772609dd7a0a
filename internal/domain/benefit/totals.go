// Package benefit aggregates profit entries into totals, monthly series, pacing and rankings.
// Every function is pure: inputs in, values out, no clock and no I/O.
package benefit

import (
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/shopspring/decimal"
)

// CurrentTotal sums the participant's entries recorded inside the window.
// The result is not clamped and may be negative.
func CurrentTotal(entries []profit.Entry, participantID string, window challenge.Window) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.ParticipantID != participantID || !window.Contains(e.RecordedAt) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// TotalsByParticipant computes CurrentTotal for every participant that has in-window entries.
func TotalsByParticipant(entries []profit.Entry, window challenge.Window) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if !window.Contains(e.RecordedAt) {
			continue
		}
		out[e.ParticipantID] = out[e.ParticipantID].Add(e.Amount)
	}
	return out
}
