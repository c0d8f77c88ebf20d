package stock

import "time"

type Company struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// DefaultCompanies returns the dashboard's tracked companies in display order.
// A fresh slice is returned on every call.
func DefaultCompanies() []Company {
	return []Company{
		{Ticker: "AAPL", Name: "Apple Inc."},
		{Ticker: "MSFT", Name: "Microsoft Corporation"},
		{Ticker: "GOOGL", Name: "Alphabet Inc."},
		{Ticker: "AMZN", Name: "Amazon.com Inc."},
		{Ticker: "NVDA", Name: "NVIDIA Corporation"},
	}
}

// Result is the per-company entry of a snapshot. Price is nil exactly when
// Success is false.
type Result struct {
	Ticker      string   `json:"ticker"`
	CompanyName string   `json:"companyName"`
	Price       *float64 `json:"price"`
	Exchange    string   `json:"exchange,omitempty"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
}

type Snapshot struct {
	Timestamp         time.Time `json:"timestamp"`
	DataPoints        int       `json:"dataPoints"`
	SuccessfulFetches int       `json:"successfulFetches"`
	Stocks            []Result  `json:"stocks"`
}
