// Package mortgage computes fixed-rate mortgage payments.
//
// ComputeBreakdown is a pure function of its inputs and never fails: inputs
// that make the arithmetic degenerate (zero home price, zero term) produce
// NaN or Inf values. Callers that need guarded results run Validate first.
package mortgage

import (
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
)

const (
	// PMIThresholdPercent is the down payment share at which PMI stops applying
	PMIThresholdPercent = 20.0
	// DefaultPMIRatePercent is the annual PMI rate applied below the threshold
	DefaultPMIRatePercent = 0.5

	monthsPerYear = 12
)

// ComputeBreakdown converts a LoanInputs snapshot into its payment breakdown
func ComputeBreakdown(in models.LoanInputs) models.PaymentBreakdown {
	financed := in.HomePrice - in.DownPayment
	monthlyRate := in.InterestRate / 100 / monthsPerYear
	n := in.LoanTermYears * monthsPerYear

	pi := principalAndInterest(financed, monthlyRate, n)

	tax := in.HomePrice * (in.PropertyTaxRate / 100) / monthsPerYear
	insurance := in.HomeInsuranceAnnual / monthsPerYear
	pmi := 0.0
	if in.DownPaymentPercent < PMIThresholdPercent {
		pmi = financed * (in.PMIRate / 100) / monthsPerYear
	}
	hoa := in.HOAMonthly

	totalOfPayments := pi * float64(n)

	return models.PaymentBreakdown{
		PrincipalAndInterest: pi,
		MonthlyPropertyTax:   tax,
		MonthlyInsurance:     insurance,
		MonthlyPMI:           pmi,
		MonthlyHOA:           hoa,
		TotalMonthlyPayment:  pi + tax + insurance + pmi + hoa,
		TotalOfPayments:      totalOfPayments,
		TotalInterestPaid:    totalOfPayments - financed,
		FinancedPrincipal:    financed,
		NumberOfPayments:     n,
	}
}

// principalAndInterest returns the level monthly payment amortizing principal
// over n payments at the given monthly rate.
func principalAndInterest(principal, monthlyRate float64, n int) float64 {
	if monthlyRate > 0 {
		growth := math.Pow(1+monthlyRate, float64(n))
		return principal * (monthlyRate * growth) / (growth - 1)
	}
	return principal / float64(n)
}

// SyncDownPayment returns the down payment amount for a percentage of the home price
func SyncDownPayment(homePrice, percent float64) float64 {
	return math.Round(homePrice * percent / 100)
}

// SyncDownPaymentPercent returns the whole percentage a down payment represents
func SyncDownPaymentPercent(homePrice, amount float64) float64 {
	return math.Round(amount / homePrice * 100)
}

// DefaultPMIRate returns the PMI rate the calculator applies for a down payment share
func DefaultPMIRate(downPaymentPercent float64) float64 {
	if downPaymentPercent < PMIThresholdPercent {
		return DefaultPMIRatePercent
	}
	return 0
}
