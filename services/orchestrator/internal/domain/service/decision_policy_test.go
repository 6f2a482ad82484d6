package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/service"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/valueobject"
)

func defaultPolicy() *service.DecisionPolicy {
	return service.NewDecisionPolicy(service.DefaultThresholds())
}

func TestDecide_CleanApprove(t *testing.T) {
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.10,
		PDScore:         0.10,
		LimitSuggestion: 25000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusApprove))
	assert.Empty(t, out.Triggers)
	assert.Equal(t, "OK", out.Explain)
}

func TestDecide_FraudDecline(t *testing.T) {
	// At or above the decline threshold the decision is decline regardless
	// of pd_score or limit.
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.75,
		PDScore:         0.05,
		LimitSuggestion: 50000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusDecline))
	assert.Equal(t, "anomaly_score>=0.7", out.Explain)
}

func TestDecide_FraudDeclineExactBoundary(t *testing.T) {
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.70,
		PDScore:         0.05,
		LimitSuggestion: 50000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusDecline))
}

func TestDecide_FraudReview(t *testing.T) {
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.40,
		PDScore:         0.05,
		LimitSuggestion: 50000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusReview))
	assert.Equal(t, "anomaly_score>=0.35", out.Explain)
}

func TestDecide_PDReview(t *testing.T) {
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.10,
		PDScore:         0.30,
		LimitSuggestion: 50000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusReview))
	assert.Equal(t, "pd_score>0.25", out.Explain)
}

func TestDecide_PDExactBoundaryApproves(t *testing.T) {
	// The pd rule is a strict inequality: pd exactly at the maximum passes.
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.10,
		PDScore:         0.25,
		LimitSuggestion: 50000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusApprove))
}

func TestDecide_NoViableLimit(t *testing.T) {
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.10,
		PDScore:         0.10,
		LimitSuggestion: 0,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusReview))
	assert.Equal(t, "no viable limit", out.Explain)
}

func TestDecide_FraudDeclineSuppressesCreditTriggers(t *testing.T) {
	// Once fraud has declined, the credit rules no longer fire; their
	// explanations are suppressed by rule order.
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.90,
		PDScore:         0.90,
		LimitSuggestion: 0,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusDecline))
	assert.Equal(t, []string{"anomaly_score>=0.7"}, out.Triggers)
}

func TestDecide_FraudReviewSuppressesCreditTriggers(t *testing.T) {
	// Review from fraud is a terminal floor for the credit rules.
	out := defaultPolicy().Decide(service.PolicyInput{
		AnomalyScore:    0.40,
		PDScore:         0.90,
		LimitSuggestion: 0,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusReview))
	assert.Equal(t, []string{"anomaly_score>=0.35"}, out.Triggers)
}

func TestDecide_CustomThresholds(t *testing.T) {
	policy := service.NewDecisionPolicy(service.Thresholds{
		FraudReview:     0.2,
		FraudDecline:    0.5,
		PDMaxForApprove: 0.1,
	})

	out := policy.Decide(service.PolicyInput{
		AnomalyScore:    0.55,
		PDScore:         0.05,
		LimitSuggestion: 1000,
	})

	assert.True(t, out.Status.Equal(valueobject.StatusDecline))
	assert.Equal(t, "anomaly_score>=0.5", out.Explain)
}

func TestDecide_EscalationMonotone(t *testing.T) {
	// Raising anomaly_score while holding other inputs fixed never relaxes
	// the decision.
	policy := defaultPolicy()
	prev := valueobject.StatusApprove
	for _, anomaly := range []float64{0.0, 0.2, 0.35, 0.5, 0.7, 0.9, 1.0} {
		out := policy.Decide(service.PolicyInput{
			AnomalyScore:    anomaly,
			PDScore:         0.1,
			LimitSuggestion: 1000,
		})
		assert.False(t, prev.StricterThan(out.Status),
			"status relaxed at anomaly_score=%v", anomaly)
		prev = out.Status
	}
}

func TestDecide_Deterministic(t *testing.T) {
	policy := defaultPolicy()
	in := service.PolicyInput{AnomalyScore: 0.4, PDScore: 0.3, LimitSuggestion: 0}

	assert.Equal(t, policy.Decide(in), policy.Decide(in))
}
