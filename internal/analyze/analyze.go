// Package analyze simulates link-metadata extraction. It answers from a
// canned rule table after a fixed delay; real extraction is out of scope.
package analyze

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrNoMatch reports that no rule recognized the URL. Callers fall back to
// manual entry; no retry is performed here.
var ErrNoMatch = errors.New("link analysis failed: no match for url")

// Result is the analyzer's suggestion for a new card. ProjectID may name a
// project the document no longer has; callers must verify before using it.
type Result struct {
	Title     string
	Tags      []string
	ProjectID string
}

type rule struct {
	pattern *regexp.Regexp
	result  Result
}

// Analyzer resolves URLs against its rule table after Delay. The zero
// Delay means DefaultDelay; tests set a tiny one.
type Analyzer struct {
	Delay time.Duration
	rules []rule
}

const DefaultDelay = 800 * time.Millisecond

func New() *Analyzer {
	return &Analyzer{
		rules: []rule{
			{
				pattern: regexp.MustCompile(`openai\.com/research/`),
				result: Result{
					Title:     "AI research deep dive",
					Tags:      []string{"AI", "Research", "LLM"},
					ProjectID: "project-research",
				},
			},
			{
				pattern: regexp.MustCompile(`voice-agent`),
				result: Result{
					Title:     "Voice agent quick-start handbook",
					Tags:      []string{"AI", "Product", "Notes"},
					ProjectID: "project-product",
				},
			},
			{
				pattern: regexp.MustCompile(`dribbble\.com`),
				result: Result{
					Title:     "Visual inspiration: dark mode cards",
					Tags:      []string{"Design", "Notes"},
					ProjectID: "project-design",
				},
			},
		},
	}
}

// Analyze settles after the configured delay: either a Result or ErrNoMatch.
// Cancelling ctx aborts the wait. The document and filter state are never
// touched while a lookup is in flight.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (Result, error) {
	delay := a.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}

	for _, r := range a.rules {
		if r.pattern.MatchString(rawURL) {
			res := r.result
			res.Tags = append([]string(nil), res.Tags...)
			return res, nil
		}
	}
	return Result{}, ErrNoMatch
}

// ValidURL reports whether the string parses as an absolute URL with a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
