// Package router maps query complexity to a bounded recursion depth.
package router

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"recurag/internal/config"
	"recurag/internal/domain"
)

// Router computes how many refinement passes a query warrants. The signal
// is the token count, a bonus per long token, and a fixed bonus when the
// query uses analytical phrasing. The signal-to-depth table comes from
// configuration; depth is clamped to [1, maxDepth] and is non-decreasing
// in the signal.
type Router struct {
	longTokenChars    int
	analyticalBonus   int
	thresholds        []config.DepthThreshold
	maxDepth          int
	tokenPattern      *regexp.Regexp
	analyticalPattern *regexp.Regexp
}

func New(cfg config.RouterConfig, maxDepth int) *Router {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &Router{
		longTokenChars:    cfg.LongTokenChars,
		analyticalBonus:   cfg.AnalyticalBonus,
		thresholds:        normalizeThresholds(cfg.DepthThresholds),
		maxDepth:          maxDepth,
		tokenPattern:      regexp.MustCompile(`[\p{L}\p{N}]+`),
		analyticalPattern: regexp.MustCompile(`(?i)why|how|compare|difference|justify`),
	}
}

// normalizeThresholds orders the table by signal and corrects any depth
// that would make routing decrease as the signal grows. A config like
// {10→2, 20→1} becomes {10→2, 20→2}.
func normalizeThresholds(thresholds []config.DepthThreshold) []config.DepthThreshold {
	out := make([]config.DepthThreshold, len(thresholds))
	copy(out, thresholds)
	sort.Slice(out, func(i, j int) bool {
		return out[i].MaxComplexity < out[j].MaxComplexity
	})
	for i := 1; i < len(out); i++ {
		if out[i].Depth < out[i-1].Depth {
			out[i].Depth = out[i-1].Depth
		}
	}
	return out
}

func (r *Router) Route(query string) (domain.Decision, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.Decision{}, domain.ErrEmptyQuery
	}

	tokens := r.tokenPattern.FindAllString(trimmed, -1)
	long := 0
	for _, tok := range tokens {
		if len(tok) > r.longTokenChars {
			long++
		}
	}
	analytical := r.analyticalPattern.MatchString(trimmed)

	complexity := len(tokens) + long
	if analytical {
		complexity += r.analyticalBonus
	}

	depth := r.maxDepth
	reasoning := fmt.Sprintf("signal %d above all thresholds", complexity)
	for _, t := range r.thresholds {
		if complexity <= t.MaxComplexity {
			depth = t.Depth
			reasoning = fmt.Sprintf("signal %d <= %d", complexity, t.MaxComplexity)
			break
		}
	}
	if depth < 1 {
		depth = 1
	}
	if depth > r.maxDepth {
		depth = r.maxDepth
	}

	return domain.Decision{
		Depth:      depth,
		Tokens:     len(tokens),
		LongTokens: long,
		Analytical: analytical,
		Complexity: complexity,
		Reasoning:  reasoning,
	}, nil
}
