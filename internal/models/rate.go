package models

import "time"

// BenchmarkRate is the latest mortgage rate offered by the brokerage
type BenchmarkRate struct {
	Rate      float64   `json:"rate"`
	Margin    float64   `json:"margin"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}
