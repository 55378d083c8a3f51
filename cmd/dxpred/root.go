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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dirpx.dev/dxpred/dxcore/check"
	"dirpx.dev/dxpred/dxcore/model/domain"
	"dirpx.dev/dxpred/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// app carries the settings shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	envFile  string
	format   string
	scalar   string
	maxDepth int
	workers  int
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "dxpred",
		Short:         "Check implications between predicates over numeric arguments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file with DXPRED_* settings")
	flags.StringVarP(&a.format, "output", "o", formatText, "Output format: text|json|yaml")
	flags.StringVar(&a.scalar, "scalar", "", "Literal type: float|int (overrides DXPRED_SCALAR)")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "Predicate nesting limit, 0 for none (overrides DXPRED_MAX_DEPTH)")
	flags.IntVar(&a.workers, "workers", 0, "Concurrent checks in batch mode (overrides DXPRED_WORKERS)")

	rootCmd.AddCommand(
		newImpliesCmd(a),
		newFitsCmd(a),
		newDomainCmd(a),
		newArgsCmd(a),
		newSimplifyCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	switch a.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.format)
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("scalar") {
		cfg.Scalar = config.Scalar(strings.ToLower(a.scalar))
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

func (a *app) integers() bool {
	return a.cfg.Scalar == config.ScalarInt
}

func newRunner[T domain.Scalar](a *app) *check.Runner[T] {
	return check.NewRunner[T](
		check.WithWorkers(a.cfg.Workers),
		check.WithMaxDepth(a.cfg.MaxDepth),
		check.WithLogger(a.logger),
	)
}

// emit writes v in the selected format; text renders the text format.
func (a *app) emit(w io.Writer, v any, text func(io.Writer) error) error {
	switch a.format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return text(w)
	}
}
