package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/roadto100k/internal/config"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/roadto100k/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/roadto100k/internal/interfaces/httpapi"
	"github.com/riskibarqy/roadto100k/internal/observability"
	idgen "github.com/riskibarqy/roadto100k/internal/platform/id"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/riskibarqy/roadto100k/internal/platform/resilience"
	"github.com/riskibarqy/roadto100k/internal/usecase"
)

// Services is the use case layer wired over the configured store backend.
type Services struct {
	Benefit       *usecase.BenefitService
	Entries       *usecase.EntryService
	Participation *usecase.ParticipationService

	closeStores func() error
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	policy := challenge.NewPolicy(cfg.ChallengeLocation)
	repos, closeStores, err := openRepositories(cfg, policy, time.Now(), logger)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()

	return &Services{
		Benefit:       usecase.NewBenefitService(repos.participants, repos.entries, repos.acceptances, policy, logger),
		Entries:       usecase.NewEntryService(repos.participants, repos.entries, policy, ids, logger),
		Participation: usecase.NewParticipationService(repos.participants, repos.acceptances, policy, ids, logger),
		closeStores:   closeStores,
	}, nil
}

func (s *Services) Close() error {
	if s == nil || s.closeStores == nil {
		return nil
	}
	return s.closeStores()
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(cfg.ServiceName)
	}

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(services.Benefit, services.Entries, services.Participation, metrics, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            metrics,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	case config.AuthModeIntrospect:
		return introspect.NewClient(
			nil,
			cfg.IntrospectURL,
			cfg.AuthTimeout,
			resilience.CircuitBreakerConfig{
				Enabled:          cfg.AuthCircuitEnabled,
				FailureThreshold: cfg.AuthCircuitFailureCount,
				OpenTimeout:      cfg.AuthCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMax,
			},
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}
