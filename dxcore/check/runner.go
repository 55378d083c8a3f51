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
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"dirpx.dev/dxpred/dxcore/model/domain"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// NewID returns a time ordered UUID, or a random one if the clock based
// generator fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// Option configures a Runner.
type Option func(*options)

type options struct {
	workers  int
	maxDepth int
	logger   *slog.Logger
	now      func() time.Time
}

// WithWorkers bounds the number of checks evaluated at the same time.
// Values below one select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxDepth sets the nesting limit passed to the predicate parser.
// Zero or a negative value disables the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithLogger sets the logger used to report evaluated checks. A nil logger
// disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Runner evaluates checks with predicates over the scalar type T.
//
// A Runner holds no mutable state and may be shared between goroutines.
type Runner[T domain.Scalar] struct {
	workers  int
	maxDepth int
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner returns a Runner configured by opts.
func NewRunner[T domain.Scalar](opts ...Option) *Runner[T] {
	o := options{
		maxDepth: predicate.DefaultMaxDepth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner[T]{
		workers:  o.workers,
		maxDepth: o.maxDepth,
		logger:   o.logger,
		now:      o.now,
	}
}

// Workers returns the concurrency limit of the runner.
func (r *Runner[T]) Workers() int {
	return r.workers
}

// Parse parses predicate text with the runner's depth limit.
func (r *Runner[T]) Parse(text string) (predicate.Predicate[T], error) {
	return predicate.Parse(text, predicate.WithMaxDepth[T](r.maxDepth))
}

// Run validates the suite and evaluates its checks concurrently. Checks
// without an ID receive a fresh UUID. Results keep the order of the suite.
//
// The only errors returned are an invalid suite and a cancelled context;
// checks that fail to parse are reported in their Result.
func (r *Runner[T]) Run(ctx context.Context, s Suite) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	started := r.now()
	results := make([]Result, len(s.Checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, c := range s.Checks {
		if c.ID == "" {
			c.ID = NewID()
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Evaluate(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := NewReport(NewID(), s.Name, started, results)
	rep.Duration = r.now().Sub(started)
	r.logger.Info("suite evaluated",
		"report_id", rep.ID,
		"suite", s.Name,
		"checks", len(results),
		"errors", rep.Errors,
		"mismatches", rep.Mismatches,
		"duration", rep.Duration,
	)
	return rep, nil
}

// Evaluate parses and evaluates a single check. It never fails: parse
// errors are recorded in the returned Result.
func (r *Runner[T]) Evaluate(c Check) Result {
	start := r.now()
	res := Result{
		ID:         c.ID,
		Name:       c.Name,
		Premise:    c.Premise,
		Conclusion: c.Conclusion,
		Expected:   c.Expect,
	}

	premise, err := r.Parse(c.Premise)
	if err != nil {
		res.Error = "premise: " + err.Error()
	}
	conclusion, cerr := r.Parse(c.Conclusion)
	if cerr != nil && res.Error == "" {
		res.Error = "conclusion: " + cerr.Error()
	}
	if res.Failed() {
		res.Duration = r.now().Sub(start)
		r.logger.Warn("check not evaluated", "check_id", c.ID, "error", res.Error)
		return res
	}

	res.Premise = premise.String()
	res.Conclusion = conclusion.String()
	res.Verdict = premise.Implies(conclusion)
	res.Fits = premise.Fits(conclusion)
	res.Domains = Domains(premise, conclusion)
	res.Duration = r.now().Sub(start)

	if res.Mismatch() {
		r.logger.Warn("unexpected verdict",
			"check_id", c.ID,
			"verdict", res.Verdict.String(),
			"expected", res.Expected.String(),
		)
	} else {
		r.logger.Debug("check evaluated",
			"check_id", c.ID,
			"verdict", res.Verdict.String(),
			"duration", res.Duration,
		)
	}
	return res
}

// Domains projects every argument of premise and conclusion on both
// predicates.
func Domains[T domain.Scalar](premise, conclusion predicate.Predicate[T]) map[string]ArgumentDomain {
	names := premise.Arguments()
	for _, n := range conclusion.ArgumentNames() {
		names.Insert(n)
	}
	if names.Size() == 0 {
		return nil
	}

	out := make(map[string]ArgumentDomain, names.Size())
	for _, n := range names.Slice() {
		out[n] = ArgumentDomain{
			Premise:    premise.Domain(n).String(),
			Conclusion: conclusion.Domain(n).String(),
		}
	}
	return out
}
