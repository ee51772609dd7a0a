package benefit

import (
	"sort"

	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/shopspring/decimal"
)

const podiumSize = 3

type Standing struct {
	Position    int
	Participant participant.Participant
	Total       decimal.Decimal
}

// Rank orders participants by total descending. Ties keep input order.
// Participants missing from totals rank with zero.
func Rank(participants []participant.Participant, totals map[string]decimal.Decimal) []Standing {
	out := make([]Standing, 0, len(participants))
	for _, p := range participants {
		out = append(out, Standing{Participant: p, Total: totals[p.ID]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

// Podium returns at most the top three standings.
func Podium(standings []Standing) []Standing {
	if len(standings) <= podiumSize {
		return standings
	}
	return standings[:podiumSize]
}
