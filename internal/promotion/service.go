package promotion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tavolohq/tavolo/internal/domain"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

// Source lists the currently active promotions. Implemented by the remote
// promotion service client.
type Source interface {
	ListActive(ctx context.Context) ([]domain.Promotion, error)
}

// Service is the single evaluation entry point for promotion codes.
// Both pre-fetched active lists and single-code previews go through
// Apply, so there is exactly one set of business rules.
type Service struct {
	source    Source
	evaluator *Evaluator
	validate  *validator.Validate
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// NewService creates a promotion service backed by the given source.
func NewService(source Source, evaluator *Evaluator, metrics *telemetry.Metrics, logger *slog.Logger) *Service {
	return &Service{
		source:    source,
		evaluator: evaluator,
		validate:  validator.New(),
		metrics:   metrics,
		logger:    logger,
	}
}

// ListActive returns the active promotions that pass structural
// validation. Malformed objects from the collaborator are dropped and
// logged, never evaluated.
func (s *Service) ListActive(ctx context.Context) ([]domain.Promotion, error) {
	promos, err := s.source.ListActive(ctx)
	if err != nil {
		return nil, domain.SyncFailure(err, "promotion.list", "Could not load promotions")
	}

	valid := promos[:0]
	for _, p := range promos {
		if err := s.validate.Struct(p); err != nil {
			s.logger.Warn("dropping malformed promotion",
				slog.String("code", p.Code), slog.Any("error", err))
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

// Apply resolves a code against the active promotions and evaluates it
// for the given subtotal. Codes match case-insensitively.
func (s *Service) Apply(ctx context.Context, code string, subtotal int64) (domain.DiscountResult, error) {
	promos, err := s.ListActive(ctx)
	if err != nil {
		return domain.DiscountResult{}, err
	}

	for _, p := range promos {
		if strings.EqualFold(p.Code, code) {
			result := s.evaluator.Evaluate(p, subtotal)
			if !result.Applied() {
				s.metrics.DiscountEvaluations.WithLabelValues(string(p.Type), "rejected").Inc()
				return result, domain.Invalid("promotion.apply", result.Reason)
			}
			s.metrics.DiscountEvaluations.WithLabelValues(string(p.Type), "applied").Inc()
			s.metrics.DiscountAmount.Observe(float64(result.Amount))
			return result, nil
		}
	}

	return domain.DiscountResult{}, domain.Invalid("promotion.apply", "Promotion code is not valid")
}
