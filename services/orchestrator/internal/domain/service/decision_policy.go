package service

import (
	"fmt"
	"strings"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/valueobject"
)

// Thresholds holds the policy thresholds in effect. They are read-only
// after process start.
type Thresholds struct {
	FraudReview     float64
	FraudDecline    float64
	PDMaxForApprove float64
}

// DefaultThresholds returns the stock policy thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FraudReview:     0.35,
		FraudDecline:    0.70,
		PDMaxForApprove: 0.25,
	}
}

// PolicyInput carries the metrics extracted from the two model responses.
type PolicyInput struct {
	AnomalyScore    float64
	PDScore         float64
	LimitSuggestion int
}

// Outcome is the result of evaluating the policy rules against an input.
type Outcome struct {
	Status   valueobject.DecisionStatus
	Triggers []string
	Explain  string
}

// Rule is one named decision rule: a pure predicate over the input and the
// current status, an escalation target and a trigger description. Rules are
// evaluated in a fixed order and can only escalate the status.
type Rule struct {
	Name    string
	Target  valueobject.DecisionStatus
	Applies func(in PolicyInput, th Thresholds, current valueobject.DecisionStatus) bool
	Trigger func(th Thresholds) string
}

// DecisionPolicy evaluates the ordered rule chain. Fraud-driven escalation
// runs before credit-driven escalation, and the credit rules fire only while
// the status is still approve, so review is their terminal floor.
type DecisionPolicy struct {
	thresholds Thresholds
	rules      []Rule
}

// NewDecisionPolicy creates a policy with the given thresholds.
func NewDecisionPolicy(th Thresholds) *DecisionPolicy {
	return &DecisionPolicy{
		thresholds: th,
		rules: []Rule{
			{
				Name:   "fraud_decline",
				Target: valueobject.StatusDecline,
				Applies: func(in PolicyInput, th Thresholds, _ valueobject.DecisionStatus) bool {
					return in.AnomalyScore >= th.FraudDecline
				},
				Trigger: func(th Thresholds) string {
					return fmt.Sprintf("anomaly_score>=%v", th.FraudDecline)
				},
			},
			{
				Name:   "fraud_review",
				Target: valueobject.StatusReview,
				Applies: func(in PolicyInput, th Thresholds, current valueobject.DecisionStatus) bool {
					return current.Equal(valueobject.StatusApprove) && in.AnomalyScore >= th.FraudReview
				},
				Trigger: func(th Thresholds) string {
					return fmt.Sprintf("anomaly_score>=%v", th.FraudReview)
				},
			},
			{
				Name:   "pd_review",
				Target: valueobject.StatusReview,
				Applies: func(in PolicyInput, th Thresholds, current valueobject.DecisionStatus) bool {
					return current.Equal(valueobject.StatusApprove) && in.PDScore > th.PDMaxForApprove
				},
				Trigger: func(th Thresholds) string {
					return fmt.Sprintf("pd_score>%v", th.PDMaxForApprove)
				},
			},
			{
				Name:   "no_viable_limit",
				Target: valueobject.StatusReview,
				Applies: func(in PolicyInput, th Thresholds, current valueobject.DecisionStatus) bool {
					return current.Equal(valueobject.StatusApprove) && in.LimitSuggestion <= 0
				},
				Trigger: func(Thresholds) string {
					return "no viable limit"
				},
			},
		},
	}
}

// Thresholds returns the thresholds in effect.
func (p *DecisionPolicy) Thresholds() Thresholds {
	return p.thresholds
}

// Decide evaluates the rule chain in order, starting from approve.
func (p *DecisionPolicy) Decide(in PolicyInput) Outcome {
	status := valueobject.StatusApprove
	triggers := make([]string, 0, len(p.rules))

	for _, rule := range p.rules {
		if rule.Applies(in, p.thresholds, status) {
			status = status.Escalate(rule.Target)
			triggers = append(triggers, rule.Trigger(p.thresholds))
		}
	}

	explain := "OK"
	if len(triggers) > 0 {
		explain = strings.Join(triggers, "; ")
	}

	return Outcome{
		Status:   status,
		Triggers: triggers,
		Explain:  explain,
	}
}
