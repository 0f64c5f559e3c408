package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	evaldto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/evaluation"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/evaluation"
)

// EvaluationController scores transcripts and summaries against references
type EvaluationController struct {
	evaluator *evaluation.Evaluator
	logger    *zap.Logger
}

// NewEvaluationController creates a new evaluation controller
func NewEvaluationController(evaluator *evaluation.Evaluator, logger *zap.Logger) *EvaluationController {
	return &EvaluationController{evaluator: evaluator, logger: logger}
}

// Evaluate computes transcription and summarization metrics
// @Summary      Evaluate output quality
// @Description  Computes word-overlap WER, CER, BLEU and ROUGE scores plus a formatted report
// @Tags         Evaluation
// @Accept       json
// @Produce      json
// @Param        request  body      evaldto.EvaluateRequest  true  "Reference and hypothesis texts"
// @Success      200      {object}  common.SuccessResponse{data=evaldto.EvaluateResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid payload"
// @Router       /evaluations [post]
func (ec *EvaluationController) Evaluate(c echo.Context) error {
	var req evaldto.EvaluateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(ec.logger, c, err)
	}

	t := ec.evaluator.EvaluateTranscription(req.Transcription.Reference, req.Transcription.Hypothesis)
	s := ec.evaluator.EvaluateSummarization(req.Summarization.Reference, req.Summarization.Hypothesis)

	return HandleSuccess(ec.logger, c, evaldto.EvaluateResponse{
		Transcription: t,
		Summarization: s,
		Report:        ec.evaluator.GenerateReport(t, s),
	})
}
