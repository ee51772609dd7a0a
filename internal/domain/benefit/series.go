package benefit

import (
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// OptionalAmount is a value that is either present or absent.
// Months that have not happened yet carry Absent.
type OptionalAmount struct {
	value   decimal.Decimal
	present bool
}

func Some(v decimal.Decimal) OptionalAmount {
	return OptionalAmount{value: v, present: true}
}

func Absent() OptionalAmount {
	return OptionalAmount{}
}

func (o OptionalAmount) Get() (decimal.Decimal, bool) {
	return o.value, o.present
}

func (o OptionalAmount) IsPresent() bool {
	return o.present
}

type SeriesValue struct {
	ParticipantID string
	Amount        OptionalAmount
}

// SeriesPoint is one month of the cumulative chart.
type SeriesPoint struct {
	Month  time.Month
	Label  string
	Values []SeriesValue
}

// Value looks up the cumulative amount for one participant.
func (p SeriesPoint) Value(participantID string) OptionalAmount {
	for _, v := range p.Values {
		if v.ParticipantID == participantID {
			return v.Amount
		}
	}
	return Absent()
}

// MonthlySeries returns exactly twelve points, January through December.
// Every listed participant gets a running total for each elapsed month (zero before any activity)
// and Absent for months after the current one.
func MonthlySeries(participantIDs []string, entries []profit.Entry, window challenge.Window, now time.Time) []SeriesPoint {
	loc := window.Location()
	inScope := make(map[string]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		inScope[id] = struct{}{}
	}

	var buckets [monthsPerYear]map[string]decimal.Decimal
	for _, e := range entries {
		if _, ok := inScope[e.ParticipantID]; !ok || !window.Contains(e.RecordedAt) {
			continue
		}
		idx := int(e.RecordedAt.In(loc).Month()) - 1
		if buckets[idx] == nil {
			buckets[idx] = make(map[string]decimal.Decimal)
		}
		buckets[idx][e.ParticipantID] = buckets[idx][e.ParticipantID].Add(e.Amount)
	}

	elapsed := elapsedMonths(window, now)
	running := make(map[string]decimal.Decimal, len(participantIDs))
	points := make([]SeriesPoint, 0, monthsPerYear)
	for idx := 0; idx < monthsPerYear; idx++ {
		month := time.Month(idx + 1)
		point := SeriesPoint{
			Month:  month,
			Label:  month.String()[:3],
			Values: make([]SeriesValue, 0, len(participantIDs)),
		}
		for _, id := range participantIDs {
			running[id] = running[id].Add(buckets[idx][id])
			amount := Absent()
			if idx < elapsed {
				amount = Some(running[id])
			}
			point.Values = append(point.Values, SeriesValue{ParticipantID: id, Amount: amount})
		}
		points = append(points, point)
	}

	return points
}

// elapsedMonths counts window months up to and including the one containing now.
func elapsedMonths(window challenge.Window, now time.Time) int {
	switch {
	case now.Before(window.Start):
		return 0
	case now.After(window.End):
		return monthsPerYear
	default:
		return int(now.In(window.Location()).Month())
	}
}
