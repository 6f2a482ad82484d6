// Package dto defines the request, response and event shapes for the
// decision orchestrator.
package dto

import "encoding/json"

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

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Client       *ClientProfile `json:"client" validate:"required"`
	Transactions []Transaction  `json:"transactions" validate:"dive"`
}

// FraudPayload is the request sent to the anomaly model.
type FraudPayload struct {
	Client       *ClientProfile `json:"client"`
	Transactions []Transaction  `json:"transactions"`
}

// RiskPayload is the request sent to the credit risk model.
type RiskPayload struct {
	Client *ClientProfile `json:"client"`
}

// PolicySnapshot records the threshold values in effect at decision time,
// so a published decision can be audited against the policy that made it.
type PolicySnapshot struct {
	FraudThresholdReview  float64 `json:"fraud_threshold_review"`
	FraudThresholdDecline float64 `json:"fraud_threshold_decline"`
	PDMaxForApprove       float64 `json:"pd_max_for_approve"`
}

// Decision is the combined outcome of the policy evaluation.
type Decision struct {
	Status  string         `json:"status"`
	Explain string         `json:"explain"`
	Policy  PolicySnapshot `json:"policy"`
}

// DecisionRecord is the unit returned to the caller and published to the
// event stream. The model responses are embedded verbatim; both paths carry
// the identical bytes.
type DecisionRecord struct {
	TraceID    string          `json:"trace_id"`
	ModelFraud json.RawMessage `json:"model_fraud"`
	ModelRisk  json.RawMessage `json:"model_risk"`
	Decision   Decision        `json:"decision"`
}
