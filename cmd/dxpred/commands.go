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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"dirpx.dev/dxpred/dxcore/check"
	"dirpx.dev/dxpred/dxcore/model"
	"dirpx.dev/dxpred/dxcore/model/domain"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"dirpx.dev/dxpred/internal/httpapi"
	"github.com/spf13/cobra"
)

func newImpliesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "implies <premise> <conclusion>",
		Short: "Decide whether the premise implies the conclusion",
		Long: `Decide whether every assignment satisfying the premise also satisfies
the conclusion. The verdict is total, partial (only some branches of a
disjunctive premise imply the conclusion) or inexistent.

Example: dxpred implies "(x >= 3) && (x <= 5)" "x > 2"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.integers() {
				return runImplies(a, newRunner[int64](a), cmd.OutOrStdout(), args[0], args[1])
			}
			return runImplies(a, newRunner[float64](a), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func runImplies[T domain.Scalar](a *app, r *check.Runner[T], w io.Writer, premise, conclusion string) error {
	res := r.Evaluate(check.Check{ID: check.NewID(), Premise: premise, Conclusion: conclusion})
	if res.Failed() {
		return errors.New(res.Error)
	}
	return a.emit(w, res, func(w io.Writer) error {
		fmt.Fprintf(w, "%s\n", res.Verdict)
		for _, name := range sortedKeys(res.Domains) {
			d := res.Domains[name]
			fmt.Fprintf(w, "  %s: %s => %s\n", name, d.Premise, d.Conclusion)
		}
		return nil
	})
}

func newFitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fits <premise> <conclusion>",
		Short: "Compare the argument domains of two predicates",
		Long: `Report whether, for every argument of the conclusion, the values the
premise allows are a subset of the values the conclusion allows.

Example: dxpred fits "x > 3" "x > 2"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.integers() {
				return runFits(a, newRunner[int64](a), cmd.OutOrStdout(), args[0], args[1])
			}
			return runFits(a, newRunner[float64](a), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

type fitsOutput struct {
	Premise    string `json:"premise" yaml:"premise"`
	Conclusion string `json:"conclusion" yaml:"conclusion"`
	Fits       bool   `json:"fits" yaml:"fits"`
}

func runFits[T domain.Scalar](a *app, r *check.Runner[T], w io.Writer, premise, conclusion string) error {
	p, err := r.Parse(premise)
	if err != nil {
		return fmt.Errorf("premise: %w", err)
	}
	q, err := r.Parse(conclusion)
	if err != nil {
		return fmt.Errorf("conclusion: %w", err)
	}
	out := fitsOutput{Premise: p.String(), Conclusion: q.String(), Fits: p.Fits(q)}
	return a.emit(w, out, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, out.Fits)
		return err
	})
}

func newDomainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domain <predicate> [argument...]",
		Short: "Print the values a predicate allows for its arguments",
		Long: `Project a predicate on each named argument, or on every argument it
mentions when none is named, and print the result in interval notation.

Example: dxpred domain "(x < 6) || (x >= 7)" x`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.integers() {
				return runDomain(a, newRunner[int64](a), cmd.OutOrStdout(), args[0], args[1:])
			}
			return runDomain(a, newRunner[float64](a), cmd.OutOrStdout(), args[0], args[1:])
		},
	}
}

func runDomain[T domain.Scalar](a *app, r *check.Runner[T], w io.Writer, text string, names []string) error {
	p, err := r.Parse(text)
	if err != nil {
		return err
	}
	for _, n := range names {
		if !predicate.IsIdentifier(n) {
			return fmt.Errorf("invalid argument name %q", n)
		}
	}
	if len(names) == 0 {
		names = p.ArgumentNames()
	}

	domains := make(map[string]string, len(names))
	for _, n := range names {
		domains[n] = p.Domain(n).String()
	}
	return a.emit(w, domains, func(w io.Writer) error {
		for _, n := range names {
			fmt.Fprintf(w, "%s: %s\n", n, domains[n])
		}
		return nil
	})
}

func newArgsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "args <predicate>",
		Short: "List the arguments a predicate mentions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.integers() {
				return runArgs(a, newRunner[int64](a), cmd.OutOrStdout(), args[0])
			}
			return runArgs(a, newRunner[float64](a), cmd.OutOrStdout(), args[0])
		},
	}
}

func runArgs[T domain.Scalar](a *app, r *check.Runner[T], w io.Writer, text string) error {
	p, err := r.Parse(text)
	if err != nil {
		return err
	}
	names := p.ArgumentNames()
	if names == nil {
		names = []string{}
	}
	return a.emit(w, names, func(w io.Writer) error {
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	})
}

func newSimplifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <predicate>",
		Short: "Fold constants out of a predicate",
		Long: `Fold constant comparisons, double negations and true/false operands
out of a predicate and print it in canonical form.

Example: dxpred simplify "!!(x > 2) && (1 < 2)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.integers() {
				return runSimplify(a, newRunner[int64](a), cmd.OutOrStdout(), args[0])
			}
			return runSimplify(a, newRunner[float64](a), cmd.OutOrStdout(), args[0])
		},
	}
}

func runSimplify[T domain.Scalar](a *app, r *check.Runner[T], w io.Writer, text string) error {
	p, err := r.Parse(text)
	if err != nil {
		return err
	}
	s := p.Simplify()
	return a.emit(w, s, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, s.String())
		return err
	})
}

func newBatchCmd(a *app) *cobra.Command {
	var allowMismatch bool

	cmd := &cobra.Command{
		Use:   "batch <suite-file|->",
		Short: "Evaluate a YAML or JSON suite of checks",
		Long: `Evaluate every check of a suite concurrently and print a report.
The command fails when a check cannot be parsed or, unless
--allow-mismatch is given, when a verdict differs from its expectation.

Example: dxpred batch thresholds.yaml -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			suite, err := check.ParseSuite(data)
			if err != nil {
				return err
			}

			var rep check.Report
			if a.integers() {
				rep, err = newRunner[int64](a).Run(cmd.Context(), suite)
			} else {
				rep, err = newRunner[float64](a).Run(cmd.Context(), suite)
			}
			if err != nil {
				return err
			}
			if err := writeReport(a, cmd.OutOrStdout(), rep); err != nil {
				return err
			}

			switch {
			case rep.Errors > 0:
				return fmt.Errorf("%d checks could not be evaluated", rep.Errors)
			case rep.Mismatches > 0 && !allowMismatch:
				return fmt.Errorf("%d checks did not match their expected verdict", rep.Mismatches)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowMismatch, "allow-mismatch", false, "Do not fail when verdicts differ from expectations")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeReport(a *app, w io.Writer, rep check.Report) error {
	var (
		data []byte
		err  error
	)
	switch a.format {
	case formatJSON:
		data, err = model.ToJSON(rep)
		data = append(data, '\n')
	case formatYAML:
		data, err = model.ToYAML(rep)
	default:
		for _, res := range rep.Results {
			fmt.Fprintln(w, res.String())
		}
		_, err = fmt.Fprintln(w, rep.String())
		return err
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checker over HTTP",
		Long: `Serve the implication checker over HTTP until interrupted.

Routes: GET /healthz, POST /v1/implies, /v1/fits, /v1/domain, /v1/batch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.integers() {
				return httpapi.New(newRunner[int64](a), a.logger).ListenAndServe(ctx, addr)
			}
			return httpapi.New(newRunner[float64](a), a.logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides DXPRED_LISTEN_ADDR)")
	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
