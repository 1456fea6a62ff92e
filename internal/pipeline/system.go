// Package pipeline wires the understanding, synthesis and evaluation stages
// into one front-end facing entry point. Front-ends (workers, CLI) call
// Process and Answer separately, or Ask for the whole chain.
package pipeline

import (
	"context"

	"campus-assistant/internal/answer"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu"
	"campus-assistant/internal/store"
)

// Response bundles everything produced for one question.
type Response struct {
	Processed  models.ProcessorOutput `json:"processed"`
	Answer     models.AnswerResult    `json:"answer"`
	Evaluation eval.Evaluation        `json:"evaluation"`
}

type System struct {
	processor   *nlu.Processor
	synthesizer *answer.Synthesizer
	evaluator   *eval.Evaluator
	halls       store.HallReader
	logger      logger.Logger
}

func NewSystem(
	processor *nlu.Processor,
	synthesizer *answer.Synthesizer,
	evaluator *eval.Evaluator,
	halls store.HallReader,
	log logger.Logger,
) *System {
	return &System{
		processor:   processor,
		synthesizer: synthesizer,
		evaluator:   evaluator,
		halls:       halls,
		logger:      log,
	}
}

// Process runs only the understanding stage.
func (s *System) Process(ctx context.Context, question string) models.ProcessorOutput {
	return s.processor.Process(ctx, question)
}

// Answer synthesizes from a previously processed output. A store read failure
// degrades to an empty snapshot rather than surfacing an error; the
// synthesizer then terminates in its no-data state.
func (s *System) Answer(ctx context.Context, processed models.ProcessorOutput) models.AnswerResult {
	halls, err := s.halls.Halls(ctx)
	if err != nil {
		s.logger.Warn("hall snapshot unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		halls = nil
	}
	return s.synthesizer.Synthesize(processed, halls)
}

// Ask runs the full chain: process, answer, evaluate.
func (s *System) Ask(ctx context.Context, question string) Response {
	processed := s.Process(ctx, question)
	answered := s.Answer(ctx, processed)
	evaluation := s.evaluator.Evaluate(processed, answered)

	s.logger.Info("question answered", map[string]interface{}{
		"domain":     processed.Domain,
		"intent":     processed.Intent,
		"confidence": answered.Confidence,
		"passed":     evaluation.Passed,
	})

	return Response{
		Processed:  processed,
		Answer:     answered,
		Evaluation: evaluation,
	}
}
