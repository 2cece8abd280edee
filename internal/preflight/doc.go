// Package preflight evaluates whether a PHP hosting environment can run the
// installer before installation starts.
//
// Two requirement profiles are evaluated independently:
//   - Package manager (Composer): every check runs, so the report lists all
//     unmet requirements at once (AccumulateAll).
//   - Application runtime: checks form a chain that stops at the first
//     failure (FailFast).
//
// Both profiles are ordered lists of Check values folded by Evaluate into a
// Report. The package never talks to the operating system directly; every
// question goes through the Probe interface:
//
//	report := preflight.EvaluatePackageManager(probe, preflight.DefaultRequirements())
//	if !report.Verdict {
//	    // report.Failed() lists the unmet requirements
//	}
package preflight
