package mortgage

import "github.com/Dan9191/mortgage-service/internal/models"

// DownPaymentField identifies which half of the down payment binding was edited last
type DownPaymentField int

const (
	DownPaymentPercentField DownPaymentField = iota
	DownPaymentAmountField
)

func (f DownPaymentField) String() string {
	if f == DownPaymentAmountField {
		return "amount"
	}
	return "percent"
}

// Session holds the calculator state of a single page visit.
// Every setter recomputes the breakdown before returning.
// A Session is not safe for concurrent use.
type Session struct {
	inputs     models.LoanInputs
	breakdown  models.PaymentBreakdown
	lastEdited DownPaymentField
}

// NewSession starts a session from initial inputs.
// A non-zero DownPaymentPercent wins over DownPayment; otherwise the
// percent is derived from the amount.
func NewSession(in models.LoanInputs) *Session {
	s := &Session{inputs: in}
	if in.DownPaymentPercent > 0 || in.DownPayment == 0 {
		s.lastEdited = DownPaymentPercentField
		s.inputs.DownPayment = SyncDownPayment(in.HomePrice, in.DownPaymentPercent)
	} else {
		s.lastEdited = DownPaymentAmountField
		s.inputs.DownPaymentPercent = SyncDownPaymentPercent(in.HomePrice, in.DownPayment)
	}
	if s.inputs.DownPaymentPercent >= PMIThresholdPercent {
		s.inputs.PMIRate = 0
	} else if s.inputs.PMIRate == 0 {
		s.inputs.PMIRate = DefaultPMIRatePercent
	}
	s.recompute()
	return s
}

// Inputs returns the current inputs
func (s *Session) Inputs() models.LoanInputs { return s.inputs }

// Breakdown returns the breakdown of the current inputs
func (s *Session) Breakdown() models.PaymentBreakdown { return s.breakdown }

// LastEdited returns the down payment field the user set most recently
func (s *Session) LastEdited() DownPaymentField { return s.lastEdited }

// SetHomePrice changes the price and rescales the down payment amount to
// keep the last-set percentage.
func (s *Session) SetHomePrice(price float64) models.PaymentBreakdown {
	s.inputs.HomePrice = price
	s.inputs.DownPayment = SyncDownPayment(price, s.inputs.DownPaymentPercent)
	s.recompute()
	return s.breakdown
}

// SetDownPayment sets the amount and derives the percentage from it
func (s *Session) SetDownPayment(amount float64) models.PaymentBreakdown {
	s.lastEdited = DownPaymentAmountField
	s.inputs.DownPayment = amount
	s.setPercent(SyncDownPaymentPercent(s.inputs.HomePrice, amount))
	s.recompute()
	return s.breakdown
}

// SetDownPaymentPercent sets the percentage and derives the amount from it
func (s *Session) SetDownPaymentPercent(percent float64) models.PaymentBreakdown {
	s.lastEdited = DownPaymentPercentField
	s.inputs.DownPayment = SyncDownPayment(s.inputs.HomePrice, percent)
	s.setPercent(percent)
	s.recompute()
	return s.breakdown
}

func (s *Session) SetInterestRate(rate float64) models.PaymentBreakdown {
	s.inputs.InterestRate = rate
	s.recompute()
	return s.breakdown
}

func (s *Session) SetLoanTerm(years int) models.PaymentBreakdown {
	s.inputs.LoanTermYears = years
	s.recompute()
	return s.breakdown
}

func (s *Session) SetPropertyTaxRate(rate float64) models.PaymentBreakdown {
	s.inputs.PropertyTaxRate = rate
	s.recompute()
	return s.breakdown
}

func (s *Session) SetHomeInsurance(annual float64) models.PaymentBreakdown {
	s.inputs.HomeInsuranceAnnual = annual
	s.recompute()
	return s.breakdown
}

// SetPMIRate overrides the PMI rate. It is ignored while the down payment
// is at or above the PMI threshold.
func (s *Session) SetPMIRate(rate float64) models.PaymentBreakdown {
	if s.inputs.DownPaymentPercent < PMIThresholdPercent {
		s.inputs.PMIRate = rate
		s.recompute()
	}
	return s.breakdown
}

func (s *Session) SetHOA(monthly float64) models.PaymentBreakdown {
	s.inputs.HOAMonthly = monthly
	s.recompute()
	return s.breakdown
}

// setPercent stores a new down payment share; a changed share resets PMI
// to the calculator default for that share.
func (s *Session) setPercent(percent float64) {
	if percent == s.inputs.DownPaymentPercent {
		return
	}
	s.inputs.DownPaymentPercent = percent
	s.inputs.PMIRate = DefaultPMIRate(percent)
}

func (s *Session) recompute() {
	s.breakdown = ComputeBreakdown(s.inputs)
}
