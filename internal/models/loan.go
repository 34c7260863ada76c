package models

// LoanInputs holds the user-editable parameters of the mortgage calculator.
// Amounts are in dollars, rates are annual percentages.
type LoanInputs struct {
	HomePrice           float64 `json:"homePrice"`
	DownPayment         float64 `json:"downPayment"`
	DownPaymentPercent  float64 `json:"downPaymentPercent"`
	InterestRate        float64 `json:"interestRate"`
	LoanTermYears       int     `json:"loanTermYears"`
	PropertyTaxRate     float64 `json:"propertyTaxRate"`
	HomeInsuranceAnnual float64 `json:"homeInsuranceAnnual"`
	PMIRate             float64 `json:"pmiRate"`
	HOAMonthly          float64 `json:"hoaMonthly"`
}

// PaymentBreakdown is the monthly and loan-life cost derived from LoanInputs
type PaymentBreakdown struct {
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	MonthlyPropertyTax   float64 `json:"monthlyPropertyTax"`
	MonthlyInsurance     float64 `json:"monthlyInsurance"`
	MonthlyPMI           float64 `json:"monthlyPmi"`
	MonthlyHOA           float64 `json:"monthlyHoa"`
	TotalMonthlyPayment  float64 `json:"totalMonthlyPayment"`
	TotalOfPayments      float64 `json:"totalOfPayments"`
	TotalInterestPaid    float64 `json:"totalInterestPaid"`
	FinancedPrincipal    float64 `json:"financedPrincipal"`
	NumberOfPayments     int     `json:"numberOfPayments"`
}
