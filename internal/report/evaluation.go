// Package report renders evaluation outcomes for people (styled text) and
// for machines (JSON).
package report

import (
	"fmt"

	"github.com/Aman-CERP/installcheck/internal/preflight"
)

// Evaluator labels used in summaries and JSON.
const (
	PackageManager = "package-manager"
	Runtime        = "runtime"
)

// Evaluation is everything known about one PHP binary after a run. A nil
// report means that evaluator was not selected. Err is set when the runtime
// could not be probed at all.
type Evaluation struct {
	Binary         string
	Version        string
	PackageManager *preflight.Report
	Runtime        *preflight.Report
	Err            error
}

// OK reports whether the binary was probed and every selected verdict holds.
func (e Evaluation) OK() bool {
	if e.Err != nil {
		return false
	}
	if e.PackageManager != nil && !e.PackageManager.Verdict {
		return false
	}
	if e.Runtime != nil && !e.Runtime.Verdict {
		return false
	}
	return true
}

// Failed returns the failed checks as evaluator/check names.
func (e Evaluation) Failed() []string {
	var names []string
	if e.PackageManager != nil {
		for _, r := range e.PackageManager.Failed() {
			names = append(names, PackageManager+"/"+r.Name)
		}
	}
	if e.Runtime != nil {
		for _, r := range e.Runtime.Failed() {
			names = append(names, Runtime+"/"+r.Name)
		}
	}
	return names
}

// AllOK reports whether every evaluation is OK. An empty run is not.
func AllOK(evals []Evaluation) bool {
	if len(evals) == 0 {
		return false
	}
	for _, e := range evals {
		if !e.OK() {
			return false
		}
	}
	return true
}

// Summary returns a one-line status for a run.
func Summary(evals []Evaluation) string {
	var failed, unprobed int
	for _, e := range evals {
		switch {
		case e.Err != nil:
			unprobed++
		case !e.OK():
			failed++
		}
	}

	noun := "runtime"
	if len(evals) != 1 {
		noun = "runtimes"
	}
	switch {
	case failed == 0 && unprobed == 0:
		return fmt.Sprintf("%d %s checked, all requirements met", len(evals), noun)
	case unprobed == 0:
		return fmt.Sprintf("%d %s checked, %d failed", len(evals), noun, failed)
	default:
		return fmt.Sprintf("%d %s checked, %d failed, %d could not be probed", len(evals), noun, failed, unprobed)
	}
}
