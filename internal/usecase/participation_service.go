package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/user"
	idgen "github.com/riskibarqy/roadto100k/internal/platform/id"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
)

const (
	anonymousName     = "Anonymous"
	avatarFallbackURL = "https://api.dicebear.com/9.x/avataaars/svg?seed="
)

// AcceptResult describes the state after a user opted into the challenge.
type AcceptResult struct {
	Participant        participant.Participant
	Year               int
	ParticipantCreated bool
}

type ParticipationService struct {
	participantRepo participant.Repository
	acceptanceRepo  challenge.AcceptanceRepository
	policy          challenge.Policy
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
	color           func() string
}

func NewParticipationService(
	participantRepo participant.Repository,
	acceptanceRepo challenge.AcceptanceRepository,
	policy challenge.Policy,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ParticipationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipationService{
		participantRepo: participantRepo,
		acceptanceRepo:  acceptanceRepo,
		policy:          policy,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
		color:           randomChartColor,
	}
}

// AcceptChallenge opts the caller into the active year, creating their participant on first use.
// Accepting again is a no-op.
func (s *ParticipationService) AcceptChallenge(ctx context.Context, principal user.Principal) (AcceptResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.AcceptChallenge")
	defer span.End()

	principal.UserID = strings.TrimSpace(principal.UserID)
	if principal.UserID == "" {
		return AcceptResult{}, fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	}

	now := s.now()
	p, created, err := s.ensureParticipant(ctx, principal, now)
	if err != nil {
		return AcceptResult{}, err
	}

	year := s.policy.ActiveYear(now)
	if err := s.acceptanceRepo.Accept(ctx, challenge.Acceptance{
		UserID:    principal.UserID,
		Year:      year,
		CreatedAt: now,
	}); err != nil {
		s.logger.ErrorContext(ctx, "accept challenge failed", "user_id", principal.UserID, "year", year, "error", err)
		return AcceptResult{}, storeFailure(err, "accept challenge")
	}

	s.logger.InfoContext(ctx, "challenge accepted",
		"user_id", principal.UserID,
		"participant_id", p.ID,
		"year", year,
		"participant_created", created,
	)

	return AcceptResult{Participant: p, Year: year, ParticipantCreated: created}, nil
}

func (s *ParticipationService) HasAccepted(ctx context.Context, userID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.HasAccepted")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}

	accepted, err := s.acceptanceRepo.Exists(ctx, userID, s.policy.ActiveYear(s.now()))
	if err != nil {
		return false, storeFailure(err, "check challenge acceptance")
	}
	return accepted, nil
}

func (s *ParticipationService) ensureParticipant(ctx context.Context, principal user.Principal, now time.Time) (participant.Participant, bool, error) {
	existing, exists, err := s.participantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return participant.Participant{}, false, storeFailure(err, "get participant by user")
	}
	if exists {
		return existing, false, nil
	}

	participantID, err := s.idGen.NewID()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("generate participant id: %w", err)
	}

	name := displayName(principal)
	avatar := strings.TrimSpace(principal.AvatarURL)
	if avatar == "" {
		avatar = avatarFallbackURL + url.QueryEscape(name)
	}

	p := participant.Participant{
		ID:        participantID,
		UserID:    principal.UserID,
		Name:      name,
		AvatarURL: avatar,
		Color:     s.color(),
		CreatedAt: now,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if !errors.Is(err, participant.ErrAlreadyExists) {
			return participant.Participant{}, false, storeFailure(err, "create participant")
		}
		// A concurrent accept created it first.
		existing, exists, err = s.participantRepo.GetByUserID(ctx, principal.UserID)
		if err != nil {
			return participant.Participant{}, false, storeFailure(err, "get participant by user")
		}
		if !exists {
			return participant.Participant{}, false, fmt.Errorf("%w: participant vanished after conflict", ErrStoreFailure)
		}
		return existing, false, nil
	}

	return p, true, nil
}

func displayName(principal user.Principal) string {
	if name := strings.TrimSpace(principal.Name); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(strings.TrimSpace(principal.Email), "@"); local != "" {
		return local
	}
	return anonymousName
}

func randomChartColor() string {
	return fmt.Sprintf("oklch(0.65 0.2 %d)", rand.IntN(360))
}
