package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/roadto100k/internal/usecase"
)

func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChallenge")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, challengeToDTO(h.benefitService.Challenge(ctx)))
}

func (h *Handler) AcceptChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptChallenge")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	result, err := h.participationService.AcceptChallenge(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "accept challenge failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.metrics.ChallengeAccepted()

	writeSuccess(ctx, w, http.StatusOK, acceptChallengeDTO{
		Year:               result.Year,
		Participant:        participantToDTO(result.Participant),
		ParticipantCreated: result.ParticipantCreated,
	})
}
