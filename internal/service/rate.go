package service

import (
	"context"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// CurrentRate returns the last fetched benchmark rate, if any
func (s *Service) CurrentRate() (models.BenchmarkRate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rate == nil {
		return models.BenchmarkRate{}, false
	}
	return *s.rate, true
}

// RefreshRate fetches the benchmark rate and keeps it for DefaultInputs.
// The previous rate is kept when the fetch fails.
func (s *Service) RefreshRate(ctx context.Context) (models.BenchmarkRate, error) {
	if s.rates == nil || !s.rates.Enabled() {
		return models.BenchmarkRate{}, ErrRateUnavailable
	}
	rate, err := s.rates.GetRate(ctx)
	if err != nil {
		s.log.Errorf("Failed to refresh benchmark rate: %v", err)
		return models.BenchmarkRate{}, err
	}

	s.mu.Lock()
	s.rate = &rate
	s.mu.Unlock()
	return rate, nil
}
