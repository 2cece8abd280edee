package report

import (
	"fmt"
	"io"
	"strings"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/preflight"
)

// Section names an evaluator in text output.
type Section struct {
	Title string
	Pass  string
	Fail  string
}

// Sections for the two evaluators.
var (
	PackageManagerSection = Section{
		Title: "Composer",
		Pass:  "Composer can be installed",
		Fail:  "Composer cannot be installed",
	}
	RuntimeSection = Section{
		Title: "Application runtime",
		Pass:  "runtime is compatible",
		Fail:  "runtime is not compatible",
	}
)

// Options controls text rendering.
type Options struct {
	// Color enables lipgloss styling. See UseColor.
	Color bool
	// Verbose prints details for passing checks too.
	Verbose bool
}

// Renderer writes evaluations as text.
type Renderer struct {
	w       io.Writer
	styles  Styles
	verbose bool
}

// NewRenderer creates a text renderer.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	return &Renderer{
		w:       w,
		styles:  GetStyles(!opts.Color),
		verbose: opts.Verbose,
	}
}

// Evaluations renders every evaluation followed by the summary line.
func (r *Renderer) Evaluations(evals []Evaluation) {
	for i, e := range evals {
		if i > 0 {
			r.println("")
		}
		r.Evaluation(e)
	}
	r.println("")
	style := r.styles.Pass
	if !AllOK(evals) {
		style = r.styles.Fail
	}
	r.println(style.Render(Summary(evals)))
}

// Evaluation renders one binary.
func (r *Renderer) Evaluation(e Evaluation) {
	header := "PHP " + e.Binary
	if e.Version != "" {
		header += " (" + e.Version + ")"
	}
	r.println(r.styles.Header.Render(header))

	if e.Err != nil {
		msg := strings.TrimRight(ierrors.FormatForCLI(e.Err), "\n")
		r.println("  " + r.styles.Fail.Render("[ERROR]") + " " + strings.ReplaceAll(msg, "\n", "\n        "))
		return
	}
	if e.PackageManager != nil {
		r.Section(PackageManagerSection, *e.PackageManager)
	}
	if e.Runtime != nil {
		r.Section(RuntimeSection, *e.Runtime)
	}
}

// Section renders one evaluator report.
func (r *Renderer) Section(sec Section, rep preflight.Report) {
	r.println("")
	r.println("  " + r.styles.Section.Render(sec.Title))

	width := nameWidth(rep)
	for _, res := range rep.Results {
		r.result(res, width)
	}
	for _, res := range rep.Info {
		r.result(res, width)
	}
	if rep.Halted {
		r.println("         " + r.styles.Dim.Render("remaining checks skipped after the first failure"))
	}

	if rep.Verdict {
		r.println("  " + r.styles.Pass.Render("=> "+sec.Pass))
	} else {
		r.println("  " + r.styles.Fail.Render("=> "+sec.Fail))
	}
}

func (r *Renderer) result(res preflight.CheckResult, width int) {
	var tag string
	switch {
	case res.Informational:
		tag = r.styles.Info.Render("[INFO]")
	case res.Passed:
		tag = r.styles.Pass.Render("[PASS]")
	default:
		tag = r.styles.Fail.Render("[FAIL]")
	}

	line := fmt.Sprintf("  %s %s  %s", tag, r.styles.Name.Render(pad(res.Name, width)), res.Description)
	if res.Informational {
		line += ": " + yesNo(res.Value)
	}
	if res.Detail != "" && (r.verbose || !res.Passed) {
		line += " " + r.styles.Dim.Render("("+res.Detail+")")
	}
	r.println(line)

	if res.Hint != "" {
		r.println("         " + r.styles.Hint.Render(res.Hint))
	}
}

func (r *Renderer) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func nameWidth(rep preflight.Report) int {
	width := 0
	for _, res := range rep.Results {
		width = max(width, len(res.Name))
	}
	for _, res := range rep.Info {
		width = max(width, len(res.Name))
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
