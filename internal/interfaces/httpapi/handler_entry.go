package httpapi

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/usecase"
)

func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	var req addEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.metrics.EntryRecorded(entryOutcome(err))
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.metrics.EntryRecorded(entryOutcome(err))
		writeError(ctx, w, err)
		return
	}

	entry, err := h.entryService.AddEntry(ctx, usecase.AddEntryInput{
		UserID: principal.UserID,
		Amount: req.Amount,
		Date:   req.Date,
	})
	h.metrics.EntryRecorded(entryOutcome(err))
	if err != nil {
		h.logger.WarnContext(ctx, "add entry failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(entry))
}

func (h *Handler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEntries")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	items, err := h.entryService.ListMyEntries(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my entries failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]entryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, entryToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func entryOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case crerr.Is(err, challenge.ErrOutOfWindow):
		return "out_of_window"
	case crerr.Is(err, challenge.ErrFutureDate):
		return "future_date"
	case crerr.Is(err, usecase.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
