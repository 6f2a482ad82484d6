// Package dto defines the request and response shapes for the anomaly
// scoring API.
package dto

import (
	"github.com/KeyGoddle/Banking-models-microservices/services/anomaly-service/internal/domain/service"
)

// ClientProfile is the applicant profile as received on the wire.
type ClientProfile struct {
	Region             string  `json:"region,omitempty"`
	Age                int     `json:"age" validate:"gte=0"`
	IncomeMonthly      float64 `json:"income_monthly" validate:"gte=0"`
	TenureMonths       int     `json:"tenure_months" validate:"gte=0"`
	ActiveLoans        int     `json:"active_loans" validate:"gte=0"`
	MonthlyObligations float64 `json:"monthly_obligations" validate:"gte=0"`
	HasMortgage        bool    `json:"has_mortgage"`
}

// Transaction is a single transaction as received on the wire.
type Transaction struct {
	Currency string  `json:"currency" validate:"required"`
	Country  string  `json:"country" validate:"required"`
	Channel  string  `json:"channel" validate:"required"`
	Amount   float64 `json:"amount"`
	MCC      int     `json:"mcc"`
	UnixTS   int64   `json:"unix_ts"`
}

// ScoreAnomalyRequest is the body of POST /score/anomaly.
type ScoreAnomalyRequest struct {
	Client       *ClientProfile `json:"client" validate:"required"`
	Transactions []Transaction  `json:"transactions" validate:"dive"`
}

// AnomalyResponse is the scoring result returned to the caller.
type AnomalyResponse struct {
	Features     map[string]any `json:"features"`
	Reasons      []string       `json:"reasons"`
	AnomalyScore float64        `json:"anomaly_score"`
}

// ToScoreInput converts the wire request into the domain scoring input.
func (r ScoreAnomalyRequest) ToScoreInput() service.ScoreInput {
	in := service.ScoreInput{
		Client: service.ClientProfile{
			Age:                r.Client.Age,
			IncomeMonthly:      r.Client.IncomeMonthly,
			TenureMonths:       r.Client.TenureMonths,
			HasMortgage:        r.Client.HasMortgage,
			ActiveLoans:        r.Client.ActiveLoans,
			MonthlyObligations: r.Client.MonthlyObligations,
			Region:             r.Client.Region,
		},
		Transactions: make([]service.Transaction, 0, len(r.Transactions)),
	}
	for _, t := range r.Transactions {
		in.Transactions = append(in.Transactions, service.Transaction{
			Amount:   t.Amount,
			Currency: t.Currency,
			MCC:      t.MCC,
			Country:  t.Country,
			UnixTS:   t.UnixTS,
			Channel:  t.Channel,
		})
	}
	return in
}

// FromScoreOutput converts the domain scoring output into the wire response.
func FromScoreOutput(out service.ScoreOutput) AnomalyResponse {
	return AnomalyResponse{
		AnomalyScore: out.Score,
		Reasons:      out.Reasons,
		Features:     out.Features,
	}
}
