package report

import (
	"encoding/json"
	"io"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/preflight"
)

// Document is the machine-readable form of a run.
type Document struct {
	OK       bool              `json:"ok"`
	Summary  string            `json:"summary"`
	Runtimes []RuntimeDocument `json:"runtimes"`
}

// RuntimeDocument describes one binary.
type RuntimeDocument struct {
	Binary         string                  `json:"binary"`
	Version        string                  `json:"version,omitempty"`
	OK             bool                    `json:"ok"`
	PackageManager *PackageManagerDocument `json:"package_manager,omitempty"`
	Runtime        *RuntimeVerdictDocument `json:"runtime,omitempty"`
	Error          json.RawMessage         `json:"error,omitempty"`
}

// PackageManagerDocument is the Composer availability verdict.
type PackageManagerDocument struct {
	Available bool                    `json:"available"`
	Checks    []preflight.CheckResult `json:"checks"`
	Info      []preflight.CheckResult `json:"info"`
}

// RuntimeVerdictDocument is the application runtime verdict.
type RuntimeVerdictDocument struct {
	Compatible bool                    `json:"compatible"`
	Checks     []preflight.CheckResult `json:"checks"`
	Halted     bool                    `json:"halted"`
}

// NewDocument builds the JSON document for a run.
func NewDocument(evals []Evaluation) Document {
	doc := Document{
		OK:       AllOK(evals),
		Summary:  Summary(evals),
		Runtimes: make([]RuntimeDocument, 0, len(evals)),
	}

	for _, e := range evals {
		rd := RuntimeDocument{
			Binary:  e.Binary,
			Version: e.Version,
			OK:      e.OK(),
		}
		if e.Err != nil {
			if data, err := ierrors.FormatJSON(e.Err); err == nil {
				rd.Error = data
			}
		}
		if e.PackageManager != nil {
			rd.PackageManager = &PackageManagerDocument{
				Available: e.PackageManager.Verdict,
				Checks:    nonNil(e.PackageManager.Results),
				Info:      nonNil(e.PackageManager.Info),
			}
		}
		if e.Runtime != nil {
			rd.Runtime = &RuntimeVerdictDocument{
				Compatible: e.Runtime.Verdict,
				Checks:     nonNil(e.Runtime.Results),
				Halted:     e.Runtime.Halted,
			}
		}
		doc.Runtimes = append(doc.Runtimes, rd)
	}
	return doc
}

// JSON writes the run as indented JSON.
func JSON(w io.Writer, evals []Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(evals))
}

func nonNil(results []preflight.CheckResult) []preflight.CheckResult {
	if results == nil {
		return []preflight.CheckResult{}
	}
	return results
}
