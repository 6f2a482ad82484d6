package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/application/dto"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/port"
	"github.com/KeyGoddle/Banking-models-microservices/services/orchestrator/internal/domain/service"
)

// publishTimeout bounds the best-effort delivery of one decision record.
const publishTimeout = time.Second

// maxInflightPublishes caps the detached publish goroutines. When the cap is
// reached new records are dropped, not queued: delivery is at-most-once and
// must never apply backpressure to the response path.
const maxInflightPublishes = 64

// Analyze is the use case that scores a request against both models and
// combines the results into a single decision.
type Analyze struct {
	fraudModel port.ModelScorer
	riskModel  port.ModelScorer
	policy     *service.DecisionPolicy
	publisher  port.DecisionPublisher
	inflight   *semaphore.Weighted
	logger     *slog.Logger
}

// NewAnalyze creates a new Analyze use case.
func NewAnalyze(
	fraudModel port.ModelScorer,
	riskModel port.ModelScorer,
	policy *service.DecisionPolicy,
	publisher port.DecisionPublisher,
	logger *slog.Logger,
) *Analyze {
	return &Analyze{
		fraudModel: fraudModel,
		riskModel:  riskModel,
		policy:     policy,
		publisher:  publisher,
		inflight:   semaphore.NewWeighted(maxInflightPublishes),
		logger:     logger,
	}
}

// fraudMetrics extracts the decision inputs from the anomaly model response.
// Pointer fields distinguish an absent field from a zero value.
type fraudMetrics struct {
	AnomalyScore *float64 `json:"anomaly_score"`
}

// riskMetrics extracts the decision inputs from the credit risk model response.
type riskMetrics struct {
	PDScore         *float64 `json:"pd_score"`
	LimitSuggestion *int     `json:"limit_suggestion"`
}

// Execute invokes both models concurrently, applies the decision policy and
// hands the record to the publisher. If either model call fails the whole
// request fails and nothing is published.
func (uc *Analyze) Execute(ctx context.Context, req dto.AnalyzeRequest) (dto.DecisionRecord, error) {
	traceID := uuid.New().String()

	transactions := req.Transactions
	if transactions == nil {
		transactions = []dto.Transaction{}
	}
	fraudPayload := dto.FraudPayload{Client: req.Client, Transactions: transactions}
	riskPayload := dto.RiskPayload{Client: req.Client}

	// Each call runs under its own HTTP timeouts. The failure of one call
	// must not cancel the other: the loser is left to finish on its own,
	// bounded by the per-call timeout, and its result is discarded.
	callCtx := context.WithoutCancel(ctx)

	var fraudRes, riskRes json.RawMessage
	type callResult struct {
		err error
	}
	done := make(chan callResult, 2)

	go func() {
		res, err := uc.fraudModel.Score(callCtx, fraudPayload)
		fraudRes = res
		done <- callResult{err: err}
	}()
	go func() {
		res, err := uc.riskModel.Score(callCtx, riskPayload)
		riskRes = res
		done <- callResult{err: err}
	}()

	// Join on both results, returning on the first failure.
	for i := 0; i < 2; i++ {
		if r := <-done; r.err != nil {
			uc.logger.Error("model call failed",
				slog.String("trace_id", traceID),
				slog.String("error", r.err.Error()),
			)
			return dto.DecisionRecord{}, r.err
		}
	}

	in := uc.extractMetrics(traceID, fraudRes, riskRes)
	outcome := uc.policy.Decide(in)

	th := uc.policy.Thresholds()
	record := dto.DecisionRecord{
		TraceID:    traceID,
		ModelFraud: fraudRes,
		ModelRisk:  riskRes,
		Decision: dto.Decision{
			Status:  outcome.Status.String(),
			Explain: outcome.Explain,
			Policy: dto.PolicySnapshot{
				FraudThresholdReview:  th.FraudReview,
				FraudThresholdDecline: th.FraudDecline,
				PDMaxForApprove:       th.PDMaxForApprove,
			},
		},
	}

	uc.logger.Info("decision made",
		slog.String("trace_id", traceID),
		slog.String("status", record.Decision.Status),
		slog.String("explain", record.Decision.Explain),
		slog.Float64("anomaly_score", in.AnomalyScore),
		slog.Float64("pd_score", in.PDScore),
	)

	uc.publishAsync(record)

	return record, nil
}

// extractMetrics pulls the policy inputs out of the raw model responses,
// substituting defensive defaults for unexpectedly absent fields.
func (uc *Analyze) extractMetrics(traceID string, fraudRes, riskRes json.RawMessage) service.PolicyInput {
	in := service.PolicyInput{
		AnomalyScore:    0.0,
		PDScore:         0.5,
		LimitSuggestion: 0,
	}

	var fm fraudMetrics
	if err := json.Unmarshal(fraudRes, &fm); err != nil {
		uc.logger.Warn("unparseable fraud model response", slog.String("trace_id", traceID))
	} else if fm.AnomalyScore != nil {
		in.AnomalyScore = *fm.AnomalyScore
	}

	var rm riskMetrics
	if err := json.Unmarshal(riskRes, &rm); err != nil {
		uc.logger.Warn("unparseable risk model response", slog.String("trace_id", traceID))
	} else {
		if rm.PDScore != nil {
			in.PDScore = *rm.PDScore
		}
		if rm.LimitSuggestion != nil {
			in.LimitSuggestion = *rm.LimitSuggestion
		}
	}

	return in
}

// publishAsync hands the record to the publisher without touching the
// response path. Publish failures are logged and discarded.
func (uc *Analyze) publishAsync(record dto.DecisionRecord) {
	if !uc.inflight.TryAcquire(1) {
		uc.logger.Warn("publish dropped, too many in flight",
			slog.String("trace_id", record.TraceID),
		)
		return
	}

	go func() {
		defer uc.inflight.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		payload, err := json.Marshal(record)
		if err != nil {
			uc.logger.Warn("decision record marshal failed",
				slog.String("trace_id", record.TraceID),
				slog.String("error", err.Error()),
			)
			return
		}

		if err := uc.publisher.Publish(ctx, record.TraceID, payload); err != nil {
			uc.logger.Warn("decision publish failed",
				slog.String("trace_id", record.TraceID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
