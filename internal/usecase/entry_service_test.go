package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	participantmock "github.com/riskibarqy/roadto100k/internal/mocks/domain/participant"
	profitmock "github.com/riskibarqy/roadto100k/internal/mocks/domain/profit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var entryTestNow = time.Date(2025, time.June, 15, 18, 30, 0, 0, time.UTC)

func newEntryServiceForTest(t *testing.T) (*EntryService, *participantmock.Repository, *profitmock.Repository) {
	t.Helper()

	participantRepo := participantmock.NewRepository(t)
	entryRepo := profitmock.NewRepository(t)
	svc := NewEntryService(participantRepo, entryRepo, testPolicy(), &sequenceIDGen{prefix: "entry"}, testLogger())
	svc.now = fixedClock(entryTestNow)
	return svc, participantRepo, entryRepo
}

func TestEntryService_AddEntry_Success(t *testing.T) {
	t.Parallel()

	svc, participantRepo, entryRepo := newEntryServiceForTest(t)
	p := participant.Participant{ID: "p-alex", UserID: "user-alex", Name: "Alex"}

	participantRepo.On("GetByUserID", mock.Anything, "user-alex").Return(p, true, nil).Once()
	entryRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(e profit.Entry) bool {
			return e.ID == "entry-1" &&
				e.ParticipantID == "p-alex" &&
				e.Amount.Equal(decimal.NewFromInt(2500)) &&
				e.RecordedAt.Equal(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)) &&
				e.CreatedAt.Equal(entryTestNow)
		})).
		Return(nil).
		Once()

	got, err := svc.AddEntry(context.Background(), AddEntryInput{
		UserID: "user-alex",
		Amount: decimal.NewFromInt(2500),
		Date:   "2025-03-03",
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if got.ID != "entry-1" {
		t.Fatalf("unexpected entry id: %s", got.ID)
	}
}

func TestEntryService_AddEntry_DefaultsDateToNow(t *testing.T) {
	t.Parallel()

	svc, participantRepo, entryRepo := newEntryServiceForTest(t)
	participantRepo.On("GetByUserID", mock.Anything, "user-sam").
		Return(participant.Participant{ID: "p-sam", UserID: "user-sam"}, true, nil).Once()
	entryRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(e profit.Entry) bool {
			return e.RecordedAt.Equal(entryTestNow) && e.Amount.Equal(decimal.NewFromInt(-300))
		})).
		Return(nil).
		Once()

	if _, err := svc.AddEntry(context.Background(), AddEntryInput{
		UserID: "user-sam",
		Amount: decimal.NewFromInt(-300),
	}); err != nil {
		t.Fatalf("negative correction should be accepted: %v", err)
	}
}

func TestEntryService_AddEntry_RejectsBeforeTouchingStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   AddEntryInput
		lookup  bool
		wantErr error
	}{
		{
			name:    "not authenticated",
			input:   AddEntryInput{UserID: " ", Amount: decimal.NewFromInt(10)},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "zero amount",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.Zero},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "sub-cent amount",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.RequireFromString("0.004")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "amount beyond column range",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.New(1, 14)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative amount beyond column range",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.RequireFromString("-100000000000000.00")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "previous year",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.NewFromInt(10), Date: "2024-12-31"},
			lookup:  true,
			wantErr: challenge.ErrOutOfWindow,
		},
		{
			name:    "next year reports out of window first",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.NewFromInt(10), Date: "2026-01-01"},
			lookup:  true,
			wantErr: challenge.ErrOutOfWindow,
		},
		{
			name:    "tomorrow",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.NewFromInt(10), Date: "2025-06-16"},
			lookup:  true,
			wantErr: challenge.ErrFutureDate,
		},
		{
			name:    "malformed date",
			input:   AddEntryInput{UserID: "user-alex", Amount: decimal.NewFromInt(10), Date: "15/06/2025"},
			lookup:  true,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, participantRepo, _ := newEntryServiceForTest(t)
			if tc.lookup {
				participantRepo.On("GetByUserID", mock.Anything, "user-alex").
					Return(participant.Participant{ID: "p-alex", UserID: "user-alex"}, true, nil).Once()
			}

			_, err := svc.AddEntry(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEntryService_AddEntry_ParticipantNotFound(t *testing.T) {
	t.Parallel()

	svc, participantRepo, _ := newEntryServiceForTest(t)
	participantRepo.On("GetByUserID", mock.Anything, "user-ghost").
		Return(participant.Participant{}, false, nil).Once()

	_, err := svc.AddEntry(context.Background(), AddEntryInput{UserID: "user-ghost", Amount: decimal.NewFromInt(5)})
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("participant not found should also match ErrNotFound")
	}
}

func TestEntryService_AddEntry_StoreFailure(t *testing.T) {
	t.Parallel()

	svc, participantRepo, entryRepo := newEntryServiceForTest(t)
	participantRepo.On("GetByUserID", mock.Anything, "user-alex").
		Return(participant.Participant{ID: "p-alex", UserID: "user-alex"}, true, nil).Once()
	driverErr := errors.New("connection reset")
	entryRepo.On("Append", mock.Anything, mock.Anything).Return(driverErr).Once()

	_, err := svc.AddEntry(context.Background(), AddEntryInput{UserID: "user-alex", Amount: decimal.NewFromInt(5)})
	if !IsStoreFailure(err) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("expected driver error to stay in the chain")
	}
}

func TestEntryService_ListMyEntries_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, participantRepo, entryRepo := newEntryServiceForTest(t)
	participantRepo.On("GetByUserID", mock.Anything, "user-alex").
		Return(participant.Participant{ID: "p-alex", UserID: "user-alex"}, true, nil).Once()

	window := testPolicy().Window(entryTestNow)
	entryRepo.
		On("List", mock.Anything, profit.Filter{ParticipantID: "p-alex", From: window.Start, To: window.End}).
		Return([]profit.Entry{
			{ID: "e1", RecordedAt: time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC)},
			{ID: "e2", RecordedAt: time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)},
			{ID: "e3", RecordedAt: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)},
		}, nil).
		Once()

	got, err := svc.ListMyEntries(context.Background(), "user-alex")
	if err != nil {
		t.Fatalf("list my entries: %v", err)
	}
	if len(got) != 3 || got[0].ID != "e3" || got[2].ID != "e1" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestEntryService_ListMyEntries_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _, _ := newEntryServiceForTest(t)
	if _, err := svc.ListMyEntries(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	valid := []string{"0.01", "-0.01", "1.500", "99999999999999.99", "-250"}
	for _, raw := range valid {
		if err := validateAmount(decimal.RequireFromString(raw)); err != nil {
			t.Fatalf("validateAmount(%s) unexpected error: %v", raw, err)
		}
	}

	invalid := []string{"0", "0.004", "12.345", "100000000000000", "-100000000000000"}
	for _, raw := range invalid {
		if err := validateAmount(decimal.RequireFromString(raw)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("validateAmount(%s) = %v, want ErrInvalidInput", raw, err)
		}
	}
}
