package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/user"
	challengemock "github.com/riskibarqy/roadto100k/internal/mocks/domain/challenge"
	participantmock "github.com/riskibarqy/roadto100k/internal/mocks/domain/participant"
	"github.com/stretchr/testify/mock"
)

var participationTestNow = time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC)

func newParticipationServiceForTest(t *testing.T) (*ParticipationService, *participantmock.Repository, *challengemock.AcceptanceRepository) {
	t.Helper()

	participantRepo := participantmock.NewRepository(t)
	acceptanceRepo := challengemock.NewAcceptanceRepository(t)
	svc := NewParticipationService(participantRepo, acceptanceRepo, testPolicy(), &sequenceIDGen{prefix: "participant"}, testLogger())
	svc.now = fixedClock(participationTestNow)
	svc.color = func() string { return "oklch(0.65 0.2 120)" }
	return svc, participantRepo, acceptanceRepo
}

func TestParticipationService_AcceptChallenge_CreatesParticipant(t *testing.T) {
	t.Parallel()

	svc, participantRepo, acceptanceRepo := newParticipationServiceForTest(t)

	participantRepo.On("GetByUserID", mock.Anything, "user-jordan").
		Return(participant.Participant{}, false, nil).Once()
	participantRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(p participant.Participant) bool {
			return p.ID == "participant-1" &&
				p.UserID == "user-jordan" &&
				p.Name == "jordan" &&
				p.AvatarURL == avatarFallbackURL+"jordan" &&
				p.Color == "oklch(0.65 0.2 120)"
		})).
		Return(nil).
		Once()
	acceptanceRepo.
		On("Accept", mock.Anything, challenge.Acceptance{UserID: "user-jordan", Year: 2025, CreatedAt: participationTestNow}).
		Return(nil).
		Once()

	got, err := svc.AcceptChallenge(context.Background(), user.Principal{UserID: "user-jordan", Email: "jordan@example.com"})
	if err != nil {
		t.Fatalf("accept challenge: %v", err)
	}
	if !got.ParticipantCreated || got.Year != 2025 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParticipationService_AcceptChallenge_ReusesExistingParticipant(t *testing.T) {
	t.Parallel()

	svc, participantRepo, acceptanceRepo := newParticipationServiceForTest(t)
	existing := participant.Participant{ID: "p-sam", UserID: "user-sam", Name: "Sam"}

	participantRepo.On("GetByUserID", mock.Anything, "user-sam").Return(existing, true, nil).Once()
	acceptanceRepo.On("Accept", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.AcceptChallenge(context.Background(), user.Principal{UserID: "user-sam", Name: "Someone Else"})
	if err != nil {
		t.Fatalf("accept challenge: %v", err)
	}
	if got.ParticipantCreated {
		t.Fatalf("expected existing participant to be reused")
	}
	if got.Participant.Name != "Sam" {
		t.Fatalf("participant must not be renamed, got %q", got.Participant.Name)
	}
}

func TestParticipationService_AcceptChallenge_ConcurrentCreate(t *testing.T) {
	t.Parallel()

	svc, participantRepo, acceptanceRepo := newParticipationServiceForTest(t)
	winner := participant.Participant{ID: "p-winner", UserID: "user-taylor", Name: "Taylor"}

	participantRepo.On("GetByUserID", mock.Anything, "user-taylor").
		Return(participant.Participant{}, false, nil).Once()
	participantRepo.On("Create", mock.Anything, mock.Anything).
		Return(participant.ErrAlreadyExists).Once()
	participantRepo.On("GetByUserID", mock.Anything, "user-taylor").
		Return(winner, true, nil).Once()
	acceptanceRepo.On("Accept", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.AcceptChallenge(context.Background(), user.Principal{UserID: "user-taylor", Name: "Taylor"})
	if err != nil {
		t.Fatalf("accept challenge: %v", err)
	}
	if got.Participant.ID != "p-winner" || got.ParticipantCreated {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParticipationService_AcceptChallenge_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newParticipationServiceForTest(t)
		if _, err := svc.AcceptChallenge(context.Background(), user.Principal{}); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("acceptance store down", func(t *testing.T) {
		t.Parallel()
		svc, participantRepo, acceptanceRepo := newParticipationServiceForTest(t)
		participantRepo.On("GetByUserID", mock.Anything, "user-alex").
			Return(participant.Participant{ID: "p-alex", UserID: "user-alex"}, true, nil).Once()
		acceptanceRepo.On("Accept", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()

		_, err := svc.AcceptChallenge(context.Background(), user.Principal{UserID: "user-alex"})
		if !IsStoreFailure(err) {
			t.Fatalf("expected store failure, got %v", err)
		}
	})
}

func TestParticipationService_HasAccepted(t *testing.T) {
	t.Parallel()

	svc, _, acceptanceRepo := newParticipationServiceForTest(t)
	acceptanceRepo.On("Exists", mock.Anything, "user-alex", 2025).Return(true, nil).Once()

	accepted, err := svc.HasAccepted(context.Background(), "user-alex")
	if err != nil {
		t.Fatalf("has accepted: %v", err)
	}
	if !accepted {
		t.Fatalf("expected accepted=true")
	}

	accepted, err = svc.HasAccepted(context.Background(), "")
	if err != nil || accepted {
		t.Fatalf("anonymous caller should never be accepted: accepted=%v err=%v", accepted, err)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		principal user.Principal
		want      string
	}{
		{user.Principal{Name: " Morgan ", Email: "m@example.com"}, "Morgan"},
		{user.Principal{Email: "casey@example.com"}, "casey"},
		{user.Principal{}, anonymousName},
	}
	for _, tc := range cases {
		if got := displayName(tc.principal); got != tc.want {
			t.Fatalf("displayName(%+v) = %q, want %q", tc.principal, got, tc.want)
		}
	}
}
