package usecase

import (
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/credit-service/internal/domain/service"
)

// ScoreCredit is the use case for scoring a client profile.
type ScoreCredit struct {
	scorer *service.CreditRiskScorer
}

// NewScoreCredit creates a new ScoreCredit use case.
func NewScoreCredit(scorer *service.CreditRiskScorer) *ScoreCredit {
	return &ScoreCredit{scorer: scorer}
}

// Execute runs the credit risk heuristic over the profile.
func (uc *ScoreCredit) Execute(client dto.ClientProfile) dto.CreditRiskResponse {
	return dto.FromScoreOutput(uc.scorer.Score(client.ToProfile()))
}
