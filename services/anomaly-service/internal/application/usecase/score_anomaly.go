package usecase

import (
	"github.com/KeyGoddle/Banking-models-microservices/services/anomaly-service/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/anomaly-service/internal/domain/service"
)

// ScoreAnomaly is the use case for scoring a transaction history.
type ScoreAnomaly struct {
	scorer *service.AnomalyScorer
}

// NewScoreAnomaly creates a new ScoreAnomaly use case.
func NewScoreAnomaly(scorer *service.AnomalyScorer) *ScoreAnomaly {
	return &ScoreAnomaly{scorer: scorer}
}

// Execute runs the anomaly heuristic over the request.
func (uc *ScoreAnomaly) Execute(req dto.ScoreAnomalyRequest) dto.AnomalyResponse {
	return dto.FromScoreOutput(uc.scorer.Score(req.ToScoreInput()))
}
