package mortgage

import (
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// Schedule returns the month-by-month amortization of the financed principal.
// It returns nil when the inputs do not describe a payable loan.
func Schedule(in models.LoanInputs) []models.AmortizationEntry {
	financed := in.HomePrice - in.DownPayment
	monthlyRate := in.InterestRate / 100 / monthsPerYear
	n := in.LoanTermYears * monthsPerYear
	if n <= 0 || financed <= 0 || monthlyRate < 0 {
		return nil
	}

	payment := principalAndInterest(financed, monthlyRate, n)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return nil
	}

	entries := make([]models.AmortizationEntry, 0, n)
	balance := financed
	for month := 1; month <= n; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		// the final payment absorbs accumulated floating-point drift
		if month == n || principal > balance {
			principal = balance
		}
		balance -= principal
		if balance < 0 {
			balance = 0
		}
		entries = append(entries, models.AmortizationEntry{
			Month:     month,
			Payment:   principal + interest,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
		if balance == 0 {
			break
		}
	}
	return entries
}

// YearlySummary folds a monthly schedule into per-year totals
func YearlySummary(entries []models.AmortizationEntry) []models.AmortizationYear {
	var years []models.AmortizationYear
	for _, e := range entries {
		year := (e.Month-1)/monthsPerYear + 1
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, models.AmortizationYear{Year: year})
		}
		y := &years[len(years)-1]
		y.PrincipalPaid += e.Principal
		y.InterestPaid += e.Interest
		y.EndBalance = e.Balance
	}
	return years
}
