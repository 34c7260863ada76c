package mortgage

import (
	"fmt"
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// percentTolerance absorbs the whole-percent rounding of SyncDownPaymentPercent
const percentTolerance = 0.5

// LoanTerms lists the loan terms offered by the calculator, in years
var LoanTerms = []int{10, 15, 20, 30}

// ValidationError reports the first input field rejected by Validate
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsLoanTerm reports whether years is one of the offered loan terms
func IsLoanTerm(years int) bool {
	for _, t := range LoanTerms {
		if t == years {
			return true
		}
	}
	return false
}

// Validate checks that inputs produce a finite breakdown.
// It returns a *ValidationError for the first offending field.
func Validate(in models.LoanInputs) error {
	checks := []struct {
		field  string
		value  float64
		reason string
		bad    bool
	}{
		{"homePrice", in.HomePrice, "must be greater than zero", !(in.HomePrice > 0)},
		{"downPayment", in.DownPayment, "must be non-negative", !(in.DownPayment >= 0)},
		{"downPayment", in.DownPayment, "must not exceed home price", in.DownPayment > in.HomePrice},
		{"downPaymentPercent", in.DownPaymentPercent, "must be between 0 and 100", !(in.DownPaymentPercent >= 0 && in.DownPaymentPercent <= 100)},
		{"downPaymentPercent", in.DownPaymentPercent, "must match down payment share of home price",
			math.Abs(in.DownPayment/in.HomePrice*100-in.DownPaymentPercent) > percentTolerance},
		{"interestRate", in.InterestRate, "must be non-negative", !(in.InterestRate >= 0)},
		{"propertyTaxRate", in.PropertyTaxRate, "must be non-negative", !(in.PropertyTaxRate >= 0)},
		{"homeInsuranceAnnual", in.HomeInsuranceAnnual, "must be non-negative", !(in.HomeInsuranceAnnual >= 0)},
		{"pmiRate", in.PMIRate, "must be non-negative", !(in.PMIRate >= 0)},
		{"hoaMonthly", in.HOAMonthly, "must be non-negative", !(in.HOAMonthly >= 0)},
	}
	for _, c := range checks {
		if math.IsInf(c.value, 0) {
			return &ValidationError{Field: c.field, Reason: "must be finite"}
		}
		if c.bad {
			return &ValidationError{Field: c.field, Reason: c.reason}
		}
	}
	if !IsLoanTerm(in.LoanTermYears) {
		return &ValidationError{
			Field:  "loanTermYears",
			Reason: fmt.Sprintf("must be one of %v", LoanTerms),
		}
	}
	return nil
}

// Normalize fills in whichever half of the down payment pair is missing.
// A pair where both halves are set is returned unchanged so that Validate
// can reject a mismatch.
func Normalize(in models.LoanInputs) models.LoanInputs {
	switch {
	case in.DownPaymentPercent == 0 && in.DownPayment > 0:
		in.DownPaymentPercent = SyncDownPaymentPercent(in.HomePrice, in.DownPayment)
	case in.DownPayment == 0 && in.DownPaymentPercent > 0:
		in.DownPayment = SyncDownPayment(in.HomePrice, in.DownPaymentPercent)
	}
	return in
}
