package mathsolve

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ============================================================
// Pipeline
// ============================================================

// Engine runs the full text-to-result pipeline. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	solver *Solver
	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-solve diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSteps replaces the step composer.
func WithSteps(steps StepComposer) Option {
	return func(e *Engine) { e.solver = NewSolver(steps) }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{solver: defaultSolver, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// SolveText runs the pipeline with the default engine.
func SolveText(input, tier string) SolveResult { return defaultEngine.SolveText(input, tier) }

// SolveText normalizes input, screens it for impossible problems, detects
// common mistakes, solves it and attaches an explanation in the register
// of tier. An empty or unknown tier means standard. It never panics;
// every failure becomes a result of class error.
func (e *Engine) SolveText(input, tier string) (result SolveResult) {
	canonical := Normalize(input)
	audience := ParseAudienceTier(tier)
	log := e.logger.With().Str("input", canonical).Str("tier", string(audience)).Logger()

	mistakes := DetectMistakes(canonical)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("solver panicked")
			result = errorResult(canonical, fmt.Errorf("internal error: %v", r))
		}
		result.CommonMistakes = mistakes
		result.Explanation = ComposeExplanation(result.EquationType, result.Answer, audience)
	}()

	if imp := CheckImpossible(canonical); imp != nil {
		log.Debug().Str("rule", imp.Rule).Msg("rejected by domain check")
		return imp.Result()
	}

	res, err := e.solver.solve(canonical)
	if err != nil {
		var ice *InternalConsistencyError
		if errors.As(err, &ice) {
			log.Warn().Err(err).Msg("derivation failed verification")
		} else {
			log.Debug().Err(err).Msg("could not solve")
		}
		return errorResult(canonical, err)
	}
	log.Debug().
		Str("equation_type", string(res.EquationType)).
		Str("answer", res.Answer).
		Int("mistakes", len(mistakes)).
		Msg("solved")
	return res
}
