package models

// AmortizationEntry represents a single monthly payment of a fixed-rate loan
type AmortizationEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// AmortizationYear aggregates twelve months of the schedule
type AmortizationYear struct {
	Year          int     `json:"year"`
	PrincipalPaid float64 `json:"principalPaid"`
	InterestPaid  float64 `json:"interestPaid"`
	EndBalance    float64 `json:"endBalance"`
}
