package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/roadto100k/internal/usecase"
)

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipants")
	defer span.End()

	items, err := h.benefitService.ListParticipants(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list participants failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]participantSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participantSummaryDTO{
			participantDTO: participantToDTO(item.Participant),
			CurrentBenefit: money(item.Total),
			Accepted:       item.Accepted,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	board, err := h.benefitService.Leaderboard(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHistory")
	defer span.End()

	history, err := h.benefitService.History(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(history))
}

// GetPacing answers zero progress for anonymous callers.
func (h *Handler) GetPacing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPacing")
	defer span.End()

	pacing, err := h.benefitService.Pacing(ctx, callerID(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "get pacing failed", "user_id", callerID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pacingToDTO(pacing))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.benefitService.Dashboard(ctx, callerID(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard failed", "user_id", callerID(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := dashboardDTO{
		Challenge:   challengeToDTO(dashboard.Challenge),
		Leaderboard: leaderboardToDTO(dashboard.Leaderboard),
		History:     historyToDTO(dashboard.History),
		Pacing:      pacingToDTO(dashboard.Pacing),
	}
	if dashboard.Me != nil {
		me := meToDTO(*dashboard.Me)
		out.Me = &me
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	me, err := h.benefitService.Me(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get me failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, meToDTO(me))
}
