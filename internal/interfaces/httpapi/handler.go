package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/roadto100k/internal/observability"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/riskibarqy/roadto100k/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

type Handler struct {
	benefitService       *usecase.BenefitService
	entryService         *usecase.EntryService
	participationService *usecase.ParticipationService
	metrics              *observability.Metrics
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	benefitService *usecase.BenefitService,
	entryService *usecase.EntryService,
	participationService *usecase.ParticipationService,
	metrics *observability.Metrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		benefitService:       benefitService,
		entryService:         entryService,
		participationService: participationService,
		metrics:              metrics,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeJSON rejects unknown fields. An empty body decodes to the zero value.
func decodeJSON(r *http.Request, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := strictJSON.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
