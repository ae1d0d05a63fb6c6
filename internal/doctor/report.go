// Package doctor runs diagnostic checks for loghoi's environment: config,
// backend reachability, the SSH config used for aliases, and the log file.
package doctor

import (
	"context"
	"sync"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Categories, in report order.
const (
	CategoryConfig  = "CONFIG"
	CategoryBackend = "BACKEND"
	CategorySSH     = "SSH"
	CategoryLogs    = "LOGS"
)

var categoryOrder = []string{CategoryConfig, CategoryBackend, CategorySSH, CategoryLogs}

// CheckResult is what a check found.
type CheckResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`

	category string
}

// Check is a single diagnostic. Run must return within the context's
// deadline when it does I/O.
type Check interface {
	Name() string
	Category() string
	Run(ctx context.Context) CheckResult
}

// Section is one category's results, in the order the checks were given.
type Section struct {
	Category string        `json:"name"`
	Results  []CheckResult `json:"results"`
}

// Summary counts results by status.
type Summary struct {
	Pass int `json:"pass"`
	Warn int `json:"warn"`
	Fail int `json:"fail"`
}

// Issues is the number of warnings and failures.
func (s Summary) Issues() int { return s.Warn + s.Fail }

// Report holds the results of one doctor run.
type Report struct {
	Results []CheckResult
}

// Run executes the checks concurrently. Results keep the order of checks.
func Run(ctx context.Context, checks []Check) Report {
	results := make([]CheckResult, len(checks))

	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := c.Run(ctx)
			if r.Name == "" {
				r.Name = c.Name()
			}
			r.category = c.Category()
			results[i] = r
		}()
	}
	wg.Wait()

	return Report{Results: results}
}

// Sections groups the results by category. Empty categories are left out.
func (r Report) Sections() []Section {
	sections := []Section{}
	for _, cat := range categoryOrder {
		var results []CheckResult
		for _, res := range r.Results {
			if res.category == cat {
				results = append(results, res)
			}
		}
		if len(results) > 0 {
			sections = append(sections, Section{Category: cat, Results: results})
		}
	}
	return sections
}

// Summary counts the results by status.
func (r Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			s.Pass++
		case StatusWarn:
			s.Warn++
		case StatusFail:
			s.Fail++
		}
	}
	return s
}

// Failed reports whether any check failed. Warnings don't count.
func (r Report) Failed() bool {
	return r.Summary().Fail > 0
}
