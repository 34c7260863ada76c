package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/mortgage"
)

const defaultInterestRate = 6.5

// DefaultInputs returns the calculator's initial state. The interest rate
// follows the latest benchmark rate once one has been fetched.
func (s *Service) DefaultInputs() models.LoanInputs {
	rate := defaultInterestRate
	if current, ok := s.CurrentRate(); ok {
		rate = current.Rate
	}
	return models.LoanInputs{
		HomePrice:           450000,
		DownPayment:         90000,
		DownPaymentPercent:  20,
		InterestRate:        rate,
		LoanTermYears:       30,
		PropertyTaxRate:     1.2,
		HomeInsuranceAnnual: 1800,
		PMIRate:             0,
		HOAMonthly:          0,
	}
}

// Calculate validates the inputs and returns their payment breakdown.
// A missing half of the down payment pair is derived from the other one.
// Results are cached by inputs; cache failures only cost a recomputation.
func (s *Service) Calculate(ctx context.Context, in models.LoanInputs) (models.PaymentBreakdown, error) {
	in = mortgage.Normalize(in)
	if err := mortgage.Validate(in); err != nil {
		return models.PaymentBreakdown{}, err
	}

	key := cacheKey(in)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var b models.PaymentBreakdown
		if err := json.Unmarshal([]byte(cached), &b); err == nil {
			return b, nil
		}
		s.log.Warnf("Discarding malformed cache entry %s", key)
	}

	b := mortgage.ComputeBreakdown(in)

	if raw, err := json.Marshal(b); err == nil {
		if err := s.cache.Set(ctx, key, string(raw)); err != nil {
			s.log.Warnf("Failed to cache breakdown: %v", err)
		}
	}
	return b, nil
}

// Amortize returns the yearly amortization summary of the inputs
func (s *Service) Amortize(_ context.Context, in models.LoanInputs) ([]models.AmortizationYear, error) {
	in = mortgage.Normalize(in)
	if err := mortgage.Validate(in); err != nil {
		return nil, err
	}
	years := mortgage.YearlySummary(mortgage.Schedule(in))
	if years == nil {
		years = []models.AmortizationYear{}
	}
	return years, nil
}

// SyncDownPayment resolves the down payment pair from whichever half was
// supplied. A percent wins when both are present.
func (s *Service) SyncDownPayment(homePrice float64, amount, percent *float64) (float64, float64, error) {
	if !(homePrice > 0) {
		return 0, 0, &mortgage.ValidationError{Field: "homePrice", Reason: "must be greater than zero"}
	}
	if math.IsInf(homePrice, 0) {
		return 0, 0, &mortgage.ValidationError{Field: "homePrice", Reason: "must be finite"}
	}
	switch {
	case percent != nil:
		if !(*percent >= 0 && *percent <= 100) {
			return 0, 0, &mortgage.ValidationError{Field: "downPaymentPercent", Reason: "must be between 0 and 100"}
		}
		return mortgage.SyncDownPayment(homePrice, *percent), *percent, nil
	case amount != nil:
		if !(*amount >= 0 && *amount <= homePrice) {
			return 0, 0, &mortgage.ValidationError{Field: "downPayment", Reason: "must be between 0 and home price"}
		}
		return *amount, mortgage.SyncDownPaymentPercent(homePrice, *amount), nil
	default:
		return 0, 0, &mortgage.ValidationError{Field: "downPayment", Reason: "amount or percent is required"}
	}
}

func cacheKey(in models.LoanInputs) string {
	return fmt.Sprintf("breakdown:%g:%g:%g:%g:%d:%g:%g:%g:%g",
		in.HomePrice, in.DownPayment, in.DownPaymentPercent, in.InterestRate, in.LoanTermYears,
		in.PropertyTaxRate, in.HomeInsuranceAnnual, in.PMIRate, in.HOAMonthly)
}
