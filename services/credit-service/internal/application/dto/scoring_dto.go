// Package dto defines the request and response shapes for the credit
// risk API.
package dto

import (
	"encoding/json"
	"fmt"

	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/domain/service"
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

// CreditRiskResponse is the scoring result returned to the caller.
type CreditRiskResponse struct {
	Bucket          string   `json:"bucket"`
	Reasons         []string `json:"reasons"`
	PDScore         float64  `json:"pd_score"`
	LimitSuggestion int      `json:"limit_suggestion"`
}

// ParseClient resolves the two accepted request shapes for POST /score/credit:
// the canonical wrapped form {"client": {...}} and the bare profile object.
// The presence of a "client" key selects the wrapped schema; there is no
// type probing beyond that.
func ParseClient(data []byte) (*ClientProfile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	raw, wrapped := fields["client"]
	if !wrapped {
		raw = data
	}

	var client ClientProfile
	if err := json.Unmarshal(raw, &client); err != nil {
		return nil, fmt.Errorf("decode client: %w", err)
	}
	return &client, nil
}

// ToProfile converts the wire profile into the domain profile.
func (c ClientProfile) ToProfile() service.ClientProfile {
	return service.ClientProfile{
		Age:                c.Age,
		IncomeMonthly:      c.IncomeMonthly,
		TenureMonths:       c.TenureMonths,
		HasMortgage:        c.HasMortgage,
		ActiveLoans:        c.ActiveLoans,
		MonthlyObligations: c.MonthlyObligations,
		Region:             c.Region,
	}
}

// FromScoreOutput converts the domain scoring output into the wire response.
func FromScoreOutput(out service.ScoreOutput) CreditRiskResponse {
	return CreditRiskResponse{
		PDScore:         out.PDScore,
		Bucket:          out.Bucket.String(),
		LimitSuggestion: out.LimitSuggestion,
		Reasons:         out.Reasons,
	}
}
