package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/shopspring/decimal"
)

type demoMember struct {
	name  string
	hue   int
	curve [12]int64
}

// Cumulative running totals per month for the demo members.
var demoMembers = []demoMember{
	{name: "Alex", hue: 150, curve: [12]int64{0, 5000, 12000, 18000, 22000, 28000, 32000, 35000, 38000, 41000, 43000, 45000}},
	{name: "Jordan", hue: 220, curve: [12]int64{0, 2000, 8000, 12000, 15000, 18000, 22000, 25000, 27000, 29000, 31000, 32500}},
	{name: "Sam", hue: 290, curve: [12]int64{0, 8000, 15000, 28000, 35000, 42000, 48000, 52000, 58000, 62000, 65000, 67800}},
	{name: "Taylor", hue: 40, curve: [12]int64{0, 1000, 2500, 4000, 5500, 6800, 8000, 9200, 10000, 11000, 11800, 12300}},
	{name: "Morgan", hue: 80, curve: [12]int64{0, 12000, 25000, 38000, 48000, 55000, 62000, 70000, 78000, 82000, 86000, 89500}},
}

// DemoData is the initial content of the memory backend.
type DemoData struct {
	Participants []participant.Participant
	Entries      []profit.Entry
	Acceptances  []challenge.Acceptance
}

// SeedDemo builds demo members who accepted the challenge for the window year.
// Monthly increments land on the 10th at noon and nothing after now is emitted.
func SeedDemo(window challenge.Window, now time.Time) DemoData {
	loc := window.Location()
	createdAt := window.Start
	out := DemoData{}

	for i, m := range demoMembers {
		p := participant.Participant{
			ID:        "demo-participant-" + m.name,
			UserID:    "demo-user-" + m.name,
			Name:      m.name,
			AvatarURL: "https://api.dicebear.com/9.x/avataaars/svg?seed=" + m.name,
			Color:     "oklch(0.65 0.2 " + strconv.Itoa(m.hue) + ")",
			CreatedAt: createdAt.Add(time.Duration(i) * time.Minute),
		}
		out.Participants = append(out.Participants, p)
		out.Acceptances = append(out.Acceptances, challenge.Acceptance{
			UserID:    p.UserID,
			Year:      window.Year,
			CreatedAt: p.CreatedAt,
		})

		var previous int64
		for month, cumulative := range m.curve {
			delta := cumulative - previous
			previous = cumulative
			if delta == 0 {
				continue
			}

			recordedAt := time.Date(window.Year, time.Month(month+1), 10, 12, 0, 0, 0, loc)
			if recordedAt.After(now) {
				break
			}
			out.Entries = append(out.Entries, profit.Entry{
				ID:            p.ID + "-" + recordedAt.Format("2006-01"),
				ParticipantID: p.ID,
				Amount:        decimal.NewFromInt(delta),
				RecordedAt:    recordedAt,
				CreatedAt:     recordedAt,
			})
		}
	}

	return out
}
