// Package suggest turns an unreliable text generator into a
// guaranteed-valid list of visualization suggestions through bounded
// retries and strict per-candidate validation.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tabviz/tabviz/internal/domain"
	"go.uber.org/zap"
)

// DefaultRetries is how many extra attempts follow a first attempt
// that produced no usable suggestion.
const DefaultRetries = 2

// Orchestrator drives the prompt → completion → parse → validate loop.
type Orchestrator struct {
	gen      Generator
	language string
	retries  int
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator. language is the target
// language for suggestion prose.
func NewOrchestrator(gen Generator, language string, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		gen:      gen,
		language: language,
		retries:  DefaultRetries,
		logger:   logger,
	}
}

// Suggest asks the model for visualization suggestions based on a
// profile. Every returned suggestion references only columns that
// exist in ds. Candidates failing validation are dropped; an attempt
// yielding zero usable candidates is retried. Provider failures are
// surfaced immediately and never retried here.
func (o *Orchestrator) Suggest(ctx context.Context, ds *domain.Dataset, p *domain.Profile) ([]domain.Suggestion, error) {
	system := systemPrompt(o.language)
	user := buildPrompt(p)

	attempts := o.retries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := o.gen.Complete(ctx, system, user)
		if err != nil {
			var perr *domain.ProviderError
			if errors.As(err, &perr) {
				return nil, err
			}
			lastErr = err
			o.logger.Warn("completion attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		candidates, err := parseSuggestions(raw)
		if err != nil {
			lastErr = err
			o.logger.Warn("suggestion response unparseable",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		valid := candidates[:0]
		for _, cand := range candidates {
			if err := validateSuggestion(cand, ds); err != nil {
				o.logger.Warn("dropping invalid suggestion",
					zap.String("title", cand.Title), zap.Error(err))
				continue
			}
			valid = append(valid, cand)
		}

		if len(valid) > 0 {
			return valid, nil
		}
		lastErr = fmt.Errorf("no candidate passed validation")
	}

	return nil, &domain.SuggestionInvalidError{Attempts: attempts, Err: lastErr}
}

// suggestionEnvelope is the required response shape.
type suggestionEnvelope struct {
	Suggestions []domain.Suggestion `json:"visualization_suggestions"`
}

// parseSuggestions decodes the raw model text defensively: markdown
// fences are stripped, a bare top-level array is accepted, and as a
// last resort the first [...] span is extracted.
func parseSuggestions(raw string) ([]domain.Suggestion, error) {
	content := stripFences(raw)

	var env suggestionEnvelope
	if err := json.Unmarshal([]byte(content), &env); err == nil && len(env.Suggestions) > 0 {
		return env.Suggestions, nil
	}

	var list []domain.Suggestion
	if err := json.Unmarshal([]byte(content), &list); err == nil && len(list) > 0 {
		return list, nil
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &list); err == nil && len(list) > 0 {
			return list, nil
		}
	}

	return nil, fmt.Errorf("response does not contain a visualization_suggestions payload")
}

// stripFences removes a wrapping markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validateSuggestion enforces the suggestion contract: known chart
// kind, required parameter roles present, every referenced column
// present in the dataset.
func validateSuggestion(s domain.Suggestion, ds *domain.Dataset) error {
	if !s.ChartKind.Valid() {
		return &domain.UnknownChartKindError{Kind: s.ChartKind}
	}
	for _, role := range s.ChartKind.RequiredParams() {
		if s.Parameters[role] == "" {
			return &domain.MissingParameterError{Kind: s.ChartKind, Parameter: role}
		}
	}
	for _, col := range s.Parameters {
		if !ds.HasColumn(col) {
			return &domain.ColumnNotFoundError{Column: col}
		}
	}
	return nil
}
