package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/pricing"
	"github.com/tollroute/tollroute/internal/routing"
)

// RefreshJob prewarms the directions cache for popular corridors and
// reloads reference prices from the pricing repository.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	routingService *routing.Service
	pricingService *pricing.Service

	// Metrics
	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRefreshes     int64
	SuccessfulRefresh  int64
	FailedRefreshes    int64
	DirectionsPrewarms int64
	PricingRefreshes   int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	RoutingService *routing.Service
	PricingService *pricing.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Corridors) == 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		routingService: cfg.RoutingService,
		pricingService: cfg.PricingService,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalCorridors int
	Successful     int
	Failed         int
	Errors         []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Corridor string
	Error    string
}

// Run executes the corridor prewarm for all configured corridors.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:      startTime,
		TotalCorridors: j.config.TotalCorridors(),
	}

	j.logger.Info().
		Int("total_corridors", result.TotalCorridors).
		Int("concurrency", j.config.Concurrency).
		Msg("starting corridor prewarm job")

	corridorsChan := make(chan Corridor, len(j.config.Corridors))
	resultsChan := make(chan corridorResult, len(j.config.Corridors))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.prewarmWorker(ctx, corridorsChan, resultsChan)
		}()
	}

	for _, c := range j.config.Corridors {
		corridorsChan <- c
	}
	close(corridorsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for cr := range resultsChan {
		if cr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, cr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("corridor prewarm job completed")

	return result
}

type corridorResult struct {
	corridor Corridor
	success  bool
	errors   []RefreshError
}

func (j *RefreshJob) prewarmWorker(ctx context.Context, corridors <-chan Corridor, results chan<- corridorResult) {
	for corridor := range corridors {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.prewarmCorridor(ctx, corridor)
		}
	}
}

func (j *RefreshJob) prewarmCorridor(ctx context.Context, corridor Corridor) corridorResult {
	result := corridorResult{
		corridor: corridor,
		success:  true,
	}

	if !j.config.PrewarmDirections || j.routingService == nil {
		return result
	}

	corridorCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.routingService.GetDirections(corridorCtx, routing.DirectionsRequest{
		Origin:      routing.Coordinate{Lat: corridor.Origin.Lat, Lon: corridor.Origin.Lon},
		Destination: routing.Coordinate{Lat: corridor.Destination.Lat, Lon: corridor.Destination.Lon},
	})
	if err != nil {
		result.errors = append(result.errors, RefreshError{
			Corridor: corridor.Name,
			Error:    err.Error(),
		})
		result.success = false
		return result
	}

	atomic.AddInt64(&j.metrics.DirectionsPrewarms, 1)
	return result
}

// RefreshPricing drops the pricing caches and warms them back from the
// repository for every configured country.
func (j *RefreshJob) RefreshPricing(ctx context.Context) error {
	if !j.config.RefreshPricing || j.pricingService == nil {
		return nil
	}

	j.logger.Debug().Msg("refreshing reference prices")

	j.pricingService.Invalidate()

	countries := j.config.Countries
	if len(countries) == 0 {
		countries = analysis.ModeledCountryCodes()
	}

	var failed int
	for _, code := range countries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := j.pricingService.VignetteCatalog(ctx, code); err != nil && !errors.Is(err, pricing.ErrNoData) {
			j.logger.Warn().Err(err).Str("country", code).Msg("vignette catalog warm failed")
			failed++
		}
		if _, err := j.pricingService.FuelPrices(ctx, code); err != nil && !errors.Is(err, pricing.ErrNoData) {
			j.logger.Warn().Err(err).Str("country", code).Msg("fuel price warm failed")
			failed++
		}
	}

	atomic.AddInt64(&j.metrics.PricingRefreshes, 1)

	if failed > 0 {
		j.logger.Warn().Int("failed", failed).Msg("pricing refresh completed with errors")
	}
	return nil
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		DirectionsPrewarms:  atomic.LoadInt64(&j.metrics.DirectionsPrewarms),
		PricingRefreshes:    atomic.LoadInt64(&j.metrics.PricingRefreshes),
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"directions_prewarms":   m.DirectionsPrewarms,
		"pricing_refreshes":     m.PricingRefreshes,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
