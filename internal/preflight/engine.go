package preflight

import (
	"log/slog"
)

// Policy decides how check failures combine into a verdict.
type Policy int

const (
	// AccumulateAll runs every check regardless of earlier failures.
	AccumulateAll Policy = iota
	// FailFast stops at the first failing check.
	FailFast
)

// String returns the string representation of a Policy.
func (p Policy) String() string {
	switch p {
	case AccumulateAll:
		return "accumulate-all"
	case FailFast:
		return "fail-fast"
	default:
		return "unknown"
	}
}

// Check is a single named capability probe.
type Check struct {
	Name        string
	Description string
	// Hint is shown to the operator when the check fails.
	Hint string
	// FailsWhen is the raw probe value that counts as a failure. It is false
	// for ordinary requirements and true for checks that detect something
	// harmful (a legacy extension, a restrictive policy).
	FailsWhen bool
	// Informational checks are displayed but never affect the verdict.
	Informational bool
	// Run returns the raw probe value.
	Run func(Probe) bool
	// Detail optionally explains the outcome. May be nil.
	Detail func(Probe) string
}

// CheckResult holds the outcome of a single check.
type CheckResult struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Value         bool   `json:"value"`
	Passed        bool   `json:"passed"`
	Informational bool   `json:"informational,omitempty"`
	Hint          string `json:"hint,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

// Report is the outcome of one evaluation.
type Report struct {
	Verdict bool          `json:"verdict"`
	Policy  Policy        `json:"-"`
	Results []CheckResult `json:"checks"`
	Info    []CheckResult `json:"info,omitempty"`
	// Halted is set when a fail-fast chain stopped with checks left to run.
	Halted bool `json:"halted,omitempty"`
}

// NewReport returns the report of an evaluation that has not run yet.
func NewReport(policy Policy) Report {
	return Report{Verdict: true, Policy: policy}
}

// Failed returns the results that did not pass, in evaluation order.
func (r Report) Failed() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Result looks up a result by check name, including informational results.
func (r Report) Result(name string) (CheckResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	for _, res := range r.Info {
		if res.Name == name {
			return res, true
		}
	}
	return CheckResult{}, false
}

// Evaluate folds checks in order into a Report under the given policy.
// The verdict starts true and can only move to false.
func Evaluate(p Probe, policy Policy, checks []Check) Report {
	report := NewReport(policy)

	for i, c := range checks {
		res := runCheck(p, c)

		if c.Informational {
			report.Info = append(report.Info, res)
			slog.Debug("preflight check",
				slog.String("check", c.Name),
				slog.Bool("value", res.Value),
				slog.Bool("informational", true))
			continue
		}

		report.Results = append(report.Results, res)
		report.Verdict = report.Verdict && res.Passed

		slog.Debug("preflight check",
			slog.String("check", c.Name),
			slog.Bool("passed", res.Passed),
			slog.String("policy", policy.String()))

		if !res.Passed && policy == FailFast {
			report.Halted = i < len(checks)-1
			if report.Halted {
				slog.Debug("preflight chain halted", slog.String("check", c.Name))
			}
			break
		}
	}

	return report
}

func runCheck(p Probe, c Check) CheckResult {
	value := c.Run(p)

	res := CheckResult{
		Name:          c.Name,
		Description:   c.Description,
		Value:         value,
		Informational: c.Informational,
	}

	if c.Informational {
		res.Passed = value
	} else {
		res.Passed = value != c.FailsWhen
	}

	if !res.Passed && !c.Informational {
		res.Hint = c.Hint
	}
	if c.Detail != nil {
		res.Detail = c.Detail(p)
	}

	return res
}
