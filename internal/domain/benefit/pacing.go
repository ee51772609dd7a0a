package benefit

import (
	"math"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/shopspring/decimal"
)

var (
	daysPerWeek  = decimal.NewFromInt(7)
	daysPerMonth = decimal.NewFromInt(30)
)

// Pacing is the rate needed to close the gap to the goal by the window end.
type Pacing struct {
	Goal          decimal.Decimal
	CurrentTotal  decimal.Decimal
	AmountNeeded  decimal.Decimal
	RemainingDays int
	PerDay        decimal.Decimal
	PerWeek       decimal.Decimal
	PerMonth      decimal.Decimal
	// Ended is set once now is past the window end; rates are zero from then on.
	Ended bool
}

// ComputePacing never divides by zero: remaining days are at least 1 while the window is open.
// A negative AmountNeeded (goal exceeded) yields negative rates.
func ComputePacing(total decimal.Decimal, window challenge.Window, now time.Time) Pacing {
	goal := challenge.GoalAmount()
	out := Pacing{
		Goal:         goal,
		CurrentTotal: total,
		AmountNeeded: goal.Sub(total),
		PerDay:       decimal.Zero,
		PerWeek:      decimal.Zero,
		PerMonth:     decimal.Zero,
	}

	if now.After(window.End) {
		out.Ended = true
		return out
	}

	out.RemainingDays = RemainingDays(window, now)
	days := decimal.NewFromInt(int64(out.RemainingDays))
	out.PerDay = out.AmountNeeded.Div(days)
	out.PerWeek = out.AmountNeeded.Mul(daysPerWeek).Div(days)
	out.PerMonth = out.AmountNeeded.Mul(daysPerMonth).Div(days)

	return out
}

// RemainingDays is ceil((window.End - now) / 24h): at least 1 while the window is open, 0 once it has closed.
func RemainingDays(window challenge.Window, now time.Time) int {
	if now.After(window.End) {
		return 0
	}
	days := int(math.Ceil(window.End.Sub(now).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
