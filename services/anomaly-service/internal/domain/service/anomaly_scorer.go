package service

import (
	"math"
	"strings"
	"time"
)

// Domain reference sets for the fraud heuristics.
var (
	hiRiskCountries = map[string]bool{
		"TR": true, "CN": true, "NG": true, "UA": true, "AE": true,
	}
	// remittance, cash advance, betting
	riskyMCC = map[int]bool{
		4829: true, 6011: true, 7995: true,
	}
	cnpChannels = map[string]bool{
		"card_not_present": true, "online": true,
	}
)

// nightHour reports whether the UTC hour falls in the night window (23:00-05:59).
func nightHour(hour int) bool {
	return hour == 23 || hour <= 5
}

// ClientProfile describes the applicant the transactions belong to.
type ClientProfile struct {
	Age                int
	IncomeMonthly      float64
	TenureMonths       int
	HasMortgage        bool
	ActiveLoans        int
	MonthlyObligations float64
	Region             string
}

// Transaction is a single historical transaction used for pattern scoring.
type Transaction struct {
	Amount   float64
	Currency string
	MCC      int
	Country  string
	UnixTS   int64
	Channel  string
}

// ScoreInput contains the data required for anomaly scoring.
type ScoreInput struct {
	Client       ClientProfile
	Transactions []Transaction
}

// ScoreOutput contains the result of anomaly scoring.
type ScoreOutput struct {
	Score    float64
	Reasons  []string
	Features map[string]any
}

// AnomalyScorer is a domain service that estimates the probability that a
// transaction pattern is fraudulent using a linear-logit heuristic.
type AnomalyScorer struct{}

// NewAnomalyScorer creates a new AnomalyScorer instance.
func NewAnomalyScorer() *AnomalyScorer {
	return &AnomalyScorer{}
}

// Score evaluates the transaction history and returns an anomaly probability
// in [0,1] with the triggered reasons and diagnostic features. It is a pure
// function of its input: identical input always yields an identical result.
func (s *AnomalyScorer) Score(input ScoreInput) ScoreOutput {
	txs := input.Transactions
	if len(txs) == 0 {
		return ScoreOutput{
			Score:    0.0,
			Reasons:  []string{"No transactions"},
			Features: map[string]any{},
		}
	}

	amounts := make([]float64, len(txs))
	for i, t := range txs {
		amounts[i] = math.Max(0.0, t.Amount)
	}
	avg := mean(amounts)
	stdev := pstdev(amounts, avg)
	if stdev == 0 {
		stdev = 1.0
	}

	// The "last" transaction is the one with the maximum timestamp; ties are
	// broken by first occurrence in input order.
	last := txs[0]
	for _, t := range txs[1:] {
		if t.UnixTS > last.UnixTS {
			last = t
		}
	}

	hiRisk := 0
	risky := 0
	nightCount := 0
	velocity1h := 0
	for _, t := range txs {
		if hiRiskCountries[t.Country] {
			hiRisk = 1
		}
		if riskyMCC[t.MCC] {
			risky = 1
		}
		if nightHour(time.Unix(t.UnixTS, 0).UTC().Hour()) {
			nightCount++
		}
		if last.UnixTS-t.UnixTS <= 3600 {
			velocity1h++
		}
	}
	nightRatio := float64(nightCount) / float64(len(txs))
	zAmount := (last.Amount - avg) / stdev

	channelRisk := 0.0
	cnpChannel := cnpChannels[strings.ToLower(last.Channel)]
	if cnpChannel {
		channelRisk = 0.2
	}

	logit := -0.6 +
		0.8*float64(hiRisk) +
		0.6*float64(risky) +
		0.5*nightRatio +
		0.35*math.Max(0.0, zAmount) +
		0.25*math.Max(0.0, float64(velocity1h-3)) +
		channelRisk

	reasons := make([]string, 0)
	if hiRisk == 1 {
		reasons = append(reasons, "High-risk country")
	}
	if risky == 1 {
		reasons = append(reasons, "Risky MCC")
	}
	if nightRatio > 0.3 {
		reasons = append(reasons, "Night activity")
	}
	if zAmount > 1.2 {
		reasons = append(reasons, "Unusual amount vs profile")
	}
	if velocity1h > 3 {
		reasons = append(reasons, "Velocity spike")
	}
	if cnpChannel {
		reasons = append(reasons, "CNP/online channel")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Normal pattern")
	}

	return ScoreOutput{
		Score:   round3(sigmoid(logit)),
		Reasons: reasons,
		Features: map[string]any{
			"avg_amount":      round2(avg),
			"z_amount":        round2(zAmount),
			"night_ratio":     round2(nightRatio),
			"hi_risk_country": hiRisk,
			"risky_mcc":       risky,
			"velocity_1h":     velocity1h,
			"last_channel":    last.Channel,
		},
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// pstdev computes the population standard deviation.
func pstdev(xs []float64, mean float64) float64 {
	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(xs)))
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
