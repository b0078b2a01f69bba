// Package diag runs self-checks against CoreState invariants and the
// controller link, giving an operator (or /api equivalent) a single report.
package diag

import (
	"context"
	"fmt"
	"time"
)

// Status is the health status of a single check.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Result is the outcome of one check.
type Result struct {
	Check    string        `json:"check"`
	Status   Status        `json:"status"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Report bundles every check's result with a worst-wins overall status.
type Report struct {
	Timestamp time.Time     `json:"timestamp"`
	Overall   Status        `json:"overall"`
	Results   []Result      `json:"results"`
	Duration  time.Duration `json:"duration"`
}

// Check is one named self-check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Checker runs a fixed list of checks and aggregates their worst status.
type Checker struct {
	checks []Check
}

// NewChecker creates a Checker running the given checks in order.
func NewChecker(checks ...Check) *Checker {
	return &Checker{checks: checks}
}

// Run executes every check and returns the aggregate report.
func (c *Checker) Run(ctx context.Context) *Report {
	start := time.Now()
	report := &Report{
		Timestamp: start,
		Results:   make([]Result, 0, len(c.checks)),
		Overall:   StatusOK,
	}
	for _, check := range c.checks {
		result := check.Run(ctx)
		report.Results = append(report.Results, result)
		switch {
		case result.Status == StatusCritical:
			report.Overall = StatusCritical
		case result.Status == StatusWarning && report.Overall != StatusCritical:
			report.Overall = StatusWarning
		}
	}
	report.Duration = time.Since(start)
	return report
}

// RunCheck runs a single named check, for targeted diagnostics.
func (c *Checker) RunCheck(ctx context.Context, name string) (*Result, error) {
	for _, check := range c.checks {
		if check.Name() == name {
			result := check.Run(ctx)
			return &result, nil
		}
	}
	return nil, fmt.Errorf("diag check %q not found", name)
}
