package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/benefit"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type ChallengeInfo struct {
	Window        challenge.Window
	Goal          decimal.Decimal
	RemainingDays int
	Ended         bool
}

type ParticipantSummary struct {
	Participant participant.Participant
	Total       decimal.Decimal
	Accepted    bool
}

type Leaderboard struct {
	Standings []benefit.Standing
	Podium    []benefit.Standing
}

// History is the monthly cumulative series for accepted participants.
type History struct {
	Participants []participant.Participant
	Points       []benefit.SeriesPoint
}

type Me struct {
	Participant participant.Participant
	Total       decimal.Decimal
	Accepted    bool
	// Position is 0 when the caller is not ranked.
	Position int
}

// BenefitService answers every read view. Each call loads a fresh snapshot and aggregates it.
type BenefitService struct {
	participantRepo participant.Repository
	entryRepo       profit.Repository
	acceptanceRepo  challenge.AcceptanceRepository
	policy          challenge.Policy
	logger          *logging.Logger
	now             func() time.Time
}

func NewBenefitService(
	participantRepo participant.Repository,
	entryRepo profit.Repository,
	acceptanceRepo challenge.AcceptanceRepository,
	policy challenge.Policy,
	logger *logging.Logger,
) *BenefitService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BenefitService{
		participantRepo: participantRepo,
		entryRepo:       entryRepo,
		acceptanceRepo:  acceptanceRepo,
		policy:          policy,
		logger:          logger,
		now:             time.Now,
	}
}

type snapshot struct {
	now          time.Time
	window       challenge.Window
	participants []participant.Participant
	acceptedIDs  map[string]struct{}
	entries      []profit.Entry
	totals       map[string]decimal.Decimal
}

func (s snapshot) isAccepted(p participant.Participant) bool {
	_, ok := s.acceptedIDs[p.UserID]
	return ok
}

func (s snapshot) acceptedParticipants() []participant.Participant {
	out := make([]participant.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		if s.isAccepted(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s snapshot) total(participantID string) decimal.Decimal {
	if v, ok := s.totals[participantID]; ok {
		return v
	}
	return decimal.Zero
}

func (s snapshot) leaderboard() Leaderboard {
	standings := benefit.Rank(s.acceptedParticipants(), s.totals)
	return Leaderboard{Standings: standings, Podium: benefit.Podium(standings)}
}

func (s snapshot) history() History {
	accepted := s.acceptedParticipants()
	ids := make([]string, 0, len(accepted))
	for _, p := range accepted {
		ids = append(ids, p.ID)
	}
	return History{
		Participants: accepted,
		Points:       benefit.MonthlySeries(ids, s.entries, s.window, s.now),
	}
}

func (s snapshot) find(userID string) (participant.Participant, bool) {
	for _, p := range s.participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return participant.Participant{}, false
}

func (s snapshot) me(p participant.Participant) Me {
	out := Me{
		Participant: p,
		Total:       s.total(p.ID),
		Accepted:    s.isAccepted(p),
	}
	if out.Accepted {
		for _, standing := range s.leaderboard().Standings {
			if standing.Participant.ID == p.ID {
				out.Position = standing.Position
				break
			}
		}
	}
	return out
}

// loadSnapshot reads participants, acceptances and window entries concurrently.
func (s *BenefitService) loadSnapshot(ctx context.Context) (snapshot, error) {
	now := s.now()
	window := s.policy.Window(now)

	var (
		participants []participant.Participant
		acceptedIDs  []string
		entries      []profit.Entry
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.participantRepo.List(ctx)
		if err != nil {
			return storeFailure(err, "list participants")
		}
		participants = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		ids, err := s.acceptanceRepo.ListUserIDsByYear(ctx, window.Year)
		if err != nil {
			return storeFailure(err, "list challenge acceptances")
		}
		acceptedIDs = ids
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.entryRepo.List(ctx, profit.Filter{From: window.Start, To: window.End})
		if err != nil {
			return storeFailure(err, "list profit entries")
		}
		entries = items
		return nil
	})
	if err := p.Wait(); err != nil {
		s.logger.WarnContext(ctx, "load benefit snapshot failed", "year", window.Year, "error", err)
		return snapshot{}, err
	}

	accepted := make(map[string]struct{}, len(acceptedIDs))
	for _, id := range acceptedIDs {
		accepted[id] = struct{}{}
	}

	return snapshot{
		now:          now,
		window:       window,
		participants: participants,
		acceptedIDs:  accepted,
		entries:      entries,
		totals:       benefit.TotalsByParticipant(entries, window),
	}, nil
}

func (s *BenefitService) Challenge(ctx context.Context) ChallengeInfo {
	_, span := startUsecaseSpan(ctx, "usecase.BenefitService.Challenge")
	defer span.End()

	now := s.now()
	return s.challengeInfo(s.policy.Window(now), now)
}

func (s *BenefitService) challengeInfo(window challenge.Window, now time.Time) ChallengeInfo {
	return ChallengeInfo{
		Window:        window,
		Goal:          challenge.GoalAmount(),
		RemainingDays: benefit.RemainingDays(window, now),
		Ended:         now.After(window.End),
	}
}

// ListParticipants returns every participant with its current total, accepted or not.
func (s *BenefitService) ListParticipants(ctx context.Context) ([]ParticipantSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.ListParticipants")
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ParticipantSummary, 0, len(snap.participants))
	for _, p := range snap.participants {
		out = append(out, ParticipantSummary{
			Participant: p,
			Total:       snap.total(p.ID),
			Accepted:    snap.isAccepted(p),
		})
	}
	return out, nil
}

func (s *BenefitService) Leaderboard(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.Leaderboard")
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Leaderboard{}, err
	}
	return snap.leaderboard(), nil
}

func (s *BenefitService) History(ctx context.Context) (History, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.History")
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return History{}, err
	}
	return snap.history(), nil
}

// Pacing computes the caller's pace. Anonymous callers and users without a participant get pacing for 0.
func (s *BenefitService) Pacing(ctx context.Context, userID string) (benefit.Pacing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.Pacing")
	defer span.End()

	now := s.now()
	window := s.policy.Window(now)

	total := decimal.Zero
	userID = strings.TrimSpace(userID)
	if userID != "" {
		p, exists, err := s.participantRepo.GetByUserID(ctx, userID)
		if err != nil {
			return benefit.Pacing{}, storeFailure(err, "get participant by user")
		}
		if exists {
			entries, err := s.entryRepo.List(ctx, profit.Filter{
				ParticipantID: p.ID,
				From:          window.Start,
				To:            window.End,
			})
			if err != nil {
				return benefit.Pacing{}, storeFailure(err, "list profit entries")
			}
			total = benefit.CurrentTotal(entries, p.ID, window)
		}
	}

	return benefit.ComputePacing(total, window, now), nil
}

func (s *BenefitService) Me(ctx context.Context, userID string) (Me, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.Me")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Me{}, fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Me{}, err
	}
	p, ok := snap.find(userID)
	if !ok {
		return Me{}, fmt.Errorf("%w: user %s has not joined the challenge", ErrParticipantNotFound, userID)
	}
	return snap.me(p), nil
}

// Dashboard bundles every view from one snapshot. Me is nil for anonymous callers and users without a participant.
type Dashboard struct {
	Challenge   ChallengeInfo
	Leaderboard Leaderboard
	History     History
	Pacing      benefit.Pacing
	Me          *Me
}

func (s *BenefitService) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BenefitService.Dashboard")
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		Challenge:   s.challengeInfo(snap.window, snap.now),
		Leaderboard: snap.leaderboard(),
		History:     snap.history(),
		Pacing:      benefit.ComputePacing(decimal.Zero, snap.window, snap.now),
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return out, nil
	}
	if p, ok := snap.find(userID); ok {
		me := snap.me(p)
		out.Me = &me
		out.Pacing = benefit.ComputePacing(me.Total, snap.window, snap.now)
	}

	return out, nil
}
