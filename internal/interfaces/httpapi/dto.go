package httpapi

import (
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/benefit"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/riskibarqy/roadto100k/internal/usecase"
	"github.com/shopspring/decimal"
)

type addEntryRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type challengeDTO struct {
	Year          int    `json:"year"`
	Timezone      string `json:"timezone"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	Goal          string `json:"goal"`
	RemainingDays int    `json:"remaining_days"`
	Ended         bool   `json:"ended"`
}

type participantDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Color     string `json:"color"`
}

type participantSummaryDTO struct {
	participantDTO
	CurrentBenefit string `json:"current_benefit"`
	Accepted       bool   `json:"accepted"`
}

type standingDTO struct {
	Position       int            `json:"position"`
	Participant    participantDTO `json:"participant"`
	CurrentBenefit string         `json:"current_benefit"`
}

type leaderboardDTO struct {
	Standings []standingDTO `json:"standings"`
	Podium    []standingDTO `json:"podium"`
}

// historyPointDTO.Values has no key for participants whose value is absent for the month.
type historyPointDTO struct {
	Month  int               `json:"month"`
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

type historyDTO struct {
	Participants []participantDTO  `json:"participants"`
	Points       []historyPointDTO `json:"points"`
}

type pacingDTO struct {
	Goal          string `json:"goal"`
	CurrentTotal  string `json:"current_total"`
	AmountNeeded  string `json:"amount_needed"`
	RemainingDays int    `json:"remaining_days"`
	PerDay        string `json:"per_day"`
	PerWeek       string `json:"per_week"`
	PerMonth      string `json:"per_month"`
	Ended         bool   `json:"ended"`
}

type meDTO struct {
	Participant    participantDTO `json:"participant"`
	CurrentBenefit string         `json:"current_benefit"`
	Accepted       bool           `json:"accepted"`
	Position       int            `json:"position,omitempty"`
}

type entryDTO struct {
	ID            string `json:"id"`
	ParticipantID string `json:"participant_id"`
	Amount        string `json:"amount"`
	RecordedAt    string `json:"recorded_at"`
	CreatedAt     string `json:"created_at"`
}

type acceptChallengeDTO struct {
	Year               int            `json:"year"`
	Participant        participantDTO `json:"participant"`
	ParticipantCreated bool           `json:"participant_created"`
}

type dashboardDTO struct {
	Challenge   challengeDTO   `json:"challenge"`
	Leaderboard leaderboardDTO `json:"leaderboard"`
	History     historyDTO     `json:"history"`
	Pacing      pacingDTO      `json:"pacing"`
	Me          *meDTO         `json:"me,omitempty"`
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func challengeToDTO(v usecase.ChallengeInfo) challengeDTO {
	return challengeDTO{
		Year:          v.Window.Year,
		Timezone:      v.Window.Location().String(),
		StartsAt:      formatTime(v.Window.Start),
		EndsAt:        formatTime(v.Window.End),
		Goal:          money(v.Goal),
		RemainingDays: v.RemainingDays,
		Ended:         v.Ended,
	}
}

func participantToDTO(p participant.Participant) participantDTO {
	return participantDTO{
		ID:        p.ID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Color:     p.Color,
	}
}

func standingsToDTO(items []benefit.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{
			Position:       s.Position,
			Participant:    participantToDTO(s.Participant),
			CurrentBenefit: money(s.Total),
		})
	}
	return out
}

func leaderboardToDTO(v usecase.Leaderboard) leaderboardDTO {
	return leaderboardDTO{
		Standings: standingsToDTO(v.Standings),
		Podium:    standingsToDTO(v.Podium),
	}
}

func historyToDTO(v usecase.History) historyDTO {
	participants := make([]participantDTO, 0, len(v.Participants))
	for _, p := range v.Participants {
		participants = append(participants, participantToDTO(p))
	}

	points := make([]historyPointDTO, 0, len(v.Points))
	for _, point := range v.Points {
		values := make(map[string]string, len(point.Values))
		for _, value := range point.Values {
			if amount, ok := value.Amount.Get(); ok {
				values[value.ParticipantID] = money(amount)
			}
		}
		points = append(points, historyPointDTO{
			Month:  int(point.Month),
			Label:  point.Label,
			Values: values,
		})
	}

	return historyDTO{Participants: participants, Points: points}
}

func pacingToDTO(v benefit.Pacing) pacingDTO {
	return pacingDTO{
		Goal:          money(v.Goal),
		CurrentTotal:  money(v.CurrentTotal),
		AmountNeeded:  money(v.AmountNeeded),
		RemainingDays: v.RemainingDays,
		PerDay:        money(v.PerDay),
		PerWeek:       money(v.PerWeek),
		PerMonth:      money(v.PerMonth),
		Ended:         v.Ended,
	}
}

func meToDTO(v usecase.Me) meDTO {
	return meDTO{
		Participant:    participantToDTO(v.Participant),
		CurrentBenefit: money(v.Total),
		Accepted:       v.Accepted,
		Position:       v.Position,
	}
}

func entryToDTO(e profit.Entry) entryDTO {
	return entryDTO{
		ID:            e.ID,
		ParticipantID: e.ParticipantID,
		Amount:        money(e.Amount),
		RecordedAt:    formatTime(e.RecordedAt),
		CreatedAt:     formatTime(e.CreatedAt),
	}
}
