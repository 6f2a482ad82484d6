package service

import (
	"fmt"
	"math"

	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/domain/valueobject"
)

// ClientProfile describes the applicant being scored.
type ClientProfile struct {
	Age                int
	IncomeMonthly      float64
	TenureMonths       int
	HasMortgage        bool
	ActiveLoans        int
	MonthlyObligations float64
	Region             string
}

// ScoreOutput contains the result of credit risk scoring.
type ScoreOutput struct {
	PDScore         float64
	Bucket          valueobject.RiskBucket
	LimitSuggestion int
	Reasons         []string
}

// CreditRiskScorer is a domain service that estimates the probability of
// default from the client profile alone. Transaction history is not consulted.
type CreditRiskScorer struct{}

// NewCreditRiskScorer creates a new CreditRiskScorer instance.
func NewCreditRiskScorer() *CreditRiskScorer {
	return &CreditRiskScorer{}
}

// Score evaluates the profile and returns the PD score, risk bucket, limit
// suggestion and reasons. It is a pure function of its input.
func (s *CreditRiskScorer) Score(c ClientProfile) ScoreOutput {
	dti := c.MonthlyObligations / math.Max(1.0, c.IncomeMonthly)

	ageFactor := 0.0
	if c.Age < 25 {
		ageFactor = 0.5
	}
	shortTenure := 0
	if c.TenureMonths < 12 {
		shortTenure = 1
	}
	manyLoans := 0
	if c.ActiveLoans >= 3 {
		manyLoans = 1
	}
	mortgage := 0
	if c.HasMortgage {
		mortgage = 1
	}

	logit := -2.2 +
		2.0*clamp(dti, 0, 1.5) +
		0.7*ageFactor +
		0.6*float64(shortTenure) +
		0.4*float64(manyLoans) -
		0.3*float64(mortgage)

	pd := round3(sigmoid(logit))

	// Lower PD earns a higher share of income as the suggested limit.
	baseLimit := c.IncomeMonthly * (0.3 - 0.2*pd)
	limit := int(math.Max(0, math.Floor(baseLimit-2*c.MonthlyObligations)))

	dtiVerdict := "OK"
	if dti >= 0.35 {
		dtiVerdict = "High"
	}
	reasons := []string{fmt.Sprintf("DTI=%v %s", round2(dti), dtiVerdict)}
	if shortTenure == 1 {
		reasons = append(reasons, "Short tenure")
	}
	if manyLoans == 1 {
		reasons = append(reasons, "Multiple active loans")
	}
	if c.Age < 23 {
		reasons = append(reasons, "Very young")
	}
	if c.HasMortgage {
		reasons = append(reasons, "Has mortgage (stability)")
	}

	return ScoreOutput{
		PDScore:         pd,
		Bucket:          valueobject.BucketFromPD(pd),
		LimitSuggestion: limit,
		Reasons:         reasons,
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
