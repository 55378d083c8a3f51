/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package check

import (
	"fmt"
	"time"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"github.com/google/uuid"
)

// ArgumentDomain is the projection of one argument in both predicates of a
// check, in interval notation.
type ArgumentDomain struct {
	Premise    string `json:"premise" yaml:"premise"`
	Conclusion string `json:"conclusion" yaml:"conclusion"`
}

// Result is the outcome of one check.
type Result struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Premise and Conclusion hold the canonical text of the parsed
	// predicates, or the original text when parsing failed.
	Premise    string `json:"premise" yaml:"premise"`
	Conclusion string `json:"conclusion" yaml:"conclusion"`

	Verdict  predicate.Implication  `json:"verdict" yaml:"verdict"`
	Fits     bool                   `json:"fits" yaml:"fits"`
	Expected *predicate.Implication `json:"expected,omitempty" yaml:"expected,omitempty"`

	// Domains maps every argument of either predicate to its projections.
	Domains map[string]ArgumentDomain `json:"domains,omitempty" yaml:"domains,omitempty"`

	// Error is set when the premise or the conclusion could not be parsed.
	// Verdict is then Inexistent and carries no information.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Failed reports whether the check could not be evaluated.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Mismatch reports whether the check was evaluated and its verdict differs
// from the expected one.
func (r Result) Mismatch() bool {
	return !r.Failed() && r.Expected != nil && *r.Expected != r.Verdict
}

// String returns a one-line summary of the result.
func (r Result) String() string {
	label := r.ID
	if r.Name != "" {
		label = r.Name
	}
	switch {
	case r.Failed():
		return fmt.Sprintf("%s: error: %s", label, r.Error)
	case r.Mismatch():
		return fmt.Sprintf("%s: %s (expected %s)", label, r.Verdict, *r.Expected)
	default:
		return fmt.Sprintf("%s: %s", label, r.Verdict)
	}
}

// Report is the outcome of a suite run.
type Report struct {
	ID        string        `json:"id" yaml:"id"`
	Suite     string        `json:"suite,omitempty" yaml:"suite,omitempty"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`

	Total      int `json:"total" yaml:"total"`
	Partial    int `json:"partial" yaml:"partial"`
	Inexistent int `json:"inexistent" yaml:"inexistent"`
	Errors     int `json:"errors" yaml:"errors"`
	Mismatches int `json:"mismatches" yaml:"mismatches"`

	Results []Result `json:"results" yaml:"results"`
}

// NewReport builds a report from results and fills in its counters.
func NewReport(id, suite string, startedAt time.Time, results []Result) Report {
	rep := Report{
		ID:        id,
		Suite:     suite,
		StartedAt: startedAt,
		Results:   results,
	}
	rep.tally()
	return rep
}

func (r *Report) tally() {
	r.Total, r.Partial, r.Inexistent, r.Errors, r.Mismatches = 0, 0, 0, 0, 0
	for _, res := range r.Results {
		if res.Failed() {
			r.Errors++
			continue
		}
		switch res.Verdict {
		case predicate.Total:
			r.Total++
		case predicate.Partial:
			r.Partial++
		default:
			r.Inexistent++
		}
		if res.Mismatch() {
			r.Mismatches++
		}
	}
}

// TypeName returns "Report".
func (r Report) TypeName() string {
	return "Report"
}

// OK reports whether every check was evaluated and matched its expectation.
func (r Report) OK() bool {
	return r.Errors == 0 && r.Mismatches == 0
}

// String returns the counters on one line.
func (r Report) String() string {
	return fmt.Sprintf("%d checks: %d total, %d partial, %d inexistent, %d errors, %d mismatches",
		len(r.Results), r.Total, r.Partial, r.Inexistent, r.Errors, r.Mismatches)
}

// Validate checks that the report has a UUID and that its counters agree
// with its results.
func (r Report) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return &errors.ValidationError{Type: "Report", Field: "ID", Reason: "must be a UUID", Value: r.ID}
	}
	want := r
	want.tally()
	if want.Total != r.Total || want.Partial != r.Partial || want.Inexistent != r.Inexistent ||
		want.Errors != r.Errors || want.Mismatches != r.Mismatches {
		return &errors.ValidationError{Type: "Report", Reason: "counters do not match results"}
	}
	for i, res := range r.Results {
		if res.Failed() {
			continue
		}
		if err := res.Verdict.Validate(); err != nil {
			return fmt.Errorf("result[%d]: %w", i, err)
		}
	}
	return nil
}
