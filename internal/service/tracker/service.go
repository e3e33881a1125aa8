package tracker

import (
	"context"
	"time"

	"github.com/jmehdipour/email-tracker/internal/metrics"
	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/repository"
	"github.com/jmehdipour/email-tracker/internal/tracking"
	"go.uber.org/zap"
)

// Result is what a successful Track call reports back to the HTTP layer.
type Result struct {
	Pair    model.Pair
	Outcome model.Outcome
}

// Service validates open events and hands them to the tracking store.
// It keeps no in-process locks; atomicity belongs to the store.
type Service struct {
	validator *tracking.Validator
	repo      repository.TrackingRepository
	log       *zap.Logger

	driver    string
	opTimeout time.Duration
}

type Options struct {
	Driver           string        // label for store metrics
	OperationTimeout time.Duration // 0 disables the per-call deadline
}

func New(v *tracking.Validator, repo repository.TrackingRepository, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		validator: v,
		repo:      repo,
		log:       log,
		driver:    opts.Driver,
		opTimeout: opts.OperationTimeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// Track records one open event for the raw customer/tenant fields.
// Errors are *tracking.Error of kind InvalidInput or StoreUnavailable.
func (s *Service) Track(ctx context.Context, customerID, tenantID string) (Result, error) {
	pair, err := s.validator.Validate(customerID, tenantID)
	if err != nil {
		metrics.OpensTotal.WithLabelValues(s.tenantLabel(tenantID), "invalid").Inc()
		s.log.Debug("rejected open event",
			zap.String("customer_number", customerID),
			zap.String("tenant", tenantID),
			zap.Error(err),
		)
		return Result{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	outcome, err := s.repo.RecordOpen(ctx, pair)
	metrics.StoreDuration.WithLabelValues(s.driver).Observe(time.Since(start).Seconds())
	if err != nil {
		if !tracking.IsStoreUnavailable(err) {
			err = tracking.StoreUnavailable("record open", err)
		}
		metrics.OpensTotal.WithLabelValues(pair.TenantID, "error").Inc()
		s.log.Error("record open failed",
			zap.String("customer_number", pair.CustomerID),
			zap.String("tenant", pair.TenantID),
			zap.Error(err),
		)
		return Result{}, err
	}

	metrics.OpensTotal.WithLabelValues(pair.TenantID, outcome.String()).Inc()
	s.log.Info("open recorded",
		zap.String("customer_number", pair.CustomerID),
		zap.String("tenant", pair.TenantID),
		zap.String("outcome", outcome.String()),
	)
	return Result{Pair: pair, Outcome: outcome}, nil
}

// Lookup returns the stored record for the pair, or nil when nothing was recorded yet.
func (s *Service) Lookup(ctx context.Context, customerID, tenantID string) (*model.TrackingRecord, error) {
	pair, err := s.validator.Validate(customerID, tenantID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rec, err := s.repo.Get(ctx, pair)
	if err != nil && !tracking.IsStoreUnavailable(err) {
		err = tracking.StoreUnavailable("lookup", err)
	}
	return rec, err
}

// Ready pings the store.
func (s *Service) Ready(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Ping(ctx)
}

// tenantLabel keeps metric cardinality bounded to the configured tenants.
func (s *Service) tenantLabel(tenant string) string {
	if s.validator.Tenants().Contains(tenant) {
		return tenant
	}
	return "unknown"
}
