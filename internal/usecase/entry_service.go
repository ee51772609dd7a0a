package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	idgen "github.com/riskibarqy/roadto100k/internal/platform/id"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// AddEntryInput is an authenticated request to record profit. Date is optional YYYY-MM-DD.
type AddEntryInput struct {
	UserID string
	Amount decimal.Decimal
	Date   string
}

type EntryService struct {
	participantRepo participant.Repository
	entryRepo       profit.Repository
	policy          challenge.Policy
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
}

func NewEntryService(
	participantRepo participant.Repository,
	entryRepo profit.Repository,
	policy challenge.Policy,
	idGen idgen.Generator,
	logger *logging.Logger,
) *EntryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EntryService{
		participantRepo: participantRepo,
		entryRepo:       entryRepo,
		policy:          policy,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// AddEntry validates and appends one entry. Nothing is written when any check fails.
func (s *EntryService) AddEntry(ctx context.Context, input AddEntryInput) (profit.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.AddEntry")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return profit.Entry{}, fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	}
	if err := validateAmount(input.Amount); err != nil {
		return profit.Entry{}, err
	}

	p, exists, err := s.participantRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return profit.Entry{}, storeFailure(err, "get participant by user")
	}
	if !exists {
		return profit.Entry{}, fmt.Errorf("%w: user %s has not joined the challenge", ErrParticipantNotFound, input.UserID)
	}

	now := s.now()
	recordedAt, err := s.policy.ResolveEntryDate(input.Date, now)
	if err != nil {
		return profit.Entry{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.policy.ValidateEntryDate(recordedAt, now); err != nil {
		return profit.Entry{}, err
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return profit.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	entry := profit.Entry{
		ID:            entryID,
		ParticipantID: p.ID,
		Amount:        input.Amount,
		RecordedAt:    recordedAt,
		CreatedAt:     now,
	}
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "append profit entry failed", "participant_id", p.ID, "error", err)
		return profit.Entry{}, storeFailure(err, "append profit entry")
	}

	s.logger.InfoContext(ctx, "profit entry recorded",
		"participant_id", p.ID,
		"entry_id", entry.ID,
		"amount", entry.Amount.String(),
		"recorded_at", entry.RecordedAt,
	)

	return entry, nil
}

// ListMyEntries returns the caller's entries in the active window, newest first.
func (s *EntryService) ListMyEntries(ctx context.Context, userID string) ([]profit.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListMyEntries")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	}

	p, exists, err := s.participantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeFailure(err, "get participant by user")
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %s has not joined the challenge", ErrParticipantNotFound, userID)
	}

	window := s.policy.Window(s.now())
	entries, err := s.entryRepo.List(ctx, profit.Filter{
		ParticipantID: p.ID,
		From:          window.Start,
		To:            window.End,
	})
	if err != nil {
		return nil, storeFailure(err, "list profit entries")
	}

	out := append([]profit.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}

// maxAmountMagnitude keeps amounts inside the NUMERIC(16, 2) entry column.
var maxAmountMagnitude = decimal.New(1, 14)

// validateAmount allows at most two decimal places; trailing zeros such as 1.500 are fine.
func validateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", ErrInvalidInput)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount %s has more than two decimal places", ErrInvalidInput, amount.String())
	}
	if amount.Abs().GreaterThanOrEqual(maxAmountMagnitude) {
		return fmt.Errorf("%w: amount %s is out of range", ErrInvalidInput, amount.String())
	}
	return nil
}
