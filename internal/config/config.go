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

// Package config loads the settings shared by the dxpred front ends.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"dirpx.dev/rxmerr"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvMaxDepth   = "DXPRED_MAX_DEPTH"
	EnvWorkers    = "DXPRED_WORKERS"
	EnvLogLevel   = "DXPRED_LOG_LEVEL"
	EnvListenAddr = "DXPRED_LISTEN_ADDR"
	EnvScalar     = "DXPRED_SCALAR"
)

// Scalar names the literal type the front ends parse predicates with.
type Scalar string

const (
	ScalarFloat Scalar = "float"
	ScalarInt   Scalar = "int"
)

// DefaultListenAddr is the HTTP address used when none is configured.
const DefaultListenAddr = ":8080"

// Config holds the front end settings.
type Config struct {
	MaxDepth   int
	Workers    int
	LogLevel   slog.Level
	ListenAddr string
	Scalar     Scalar
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		MaxDepth:   predicate.DefaultMaxDepth,
		Workers:    runtime.NumCPU(),
		LogLevel:   slog.LevelInfo,
		ListenAddr: DefaultListenAddr,
		Scalar:     ScalarFloat,
	}
}

// Load reads the given .env files (".env" when none is given) into the
// process environment, then builds a Config from it. Missing .env files are
// ignored and variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup function. Every malformed
// variable is reported, not only the first one.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	c := rxmerr.NewCollector()

	if v := strings.TrimSpace(getenv(EnvMaxDepth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Append(invalid(EnvMaxDepth, "must be an integer", v))
		} else {
			cfg.MaxDepth = n
		}
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Append(invalid(EnvWorkers, "must be an integer", v))
		} else {
			cfg.Workers = n
		}
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			c.Append(invalid(EnvLogLevel, "must be debug, info, warn or error", v))
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v := strings.TrimSpace(getenv(EnvListenAddr)); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(getenv(EnvScalar)); v != "" {
		cfg.Scalar = Scalar(strings.ToLower(v))
	}

	if err := c.Err(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of the settings.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return invalid("MaxDepth", "must not be negative (0 disables the limit)", c.MaxDepth)
	}
	if c.Workers < 1 {
		return invalid("Workers", "must be at least 1", c.Workers)
	}
	if c.ListenAddr == "" {
		return invalid("ListenAddr", "must not be empty", c.ListenAddr)
	}
	if c.Scalar != ScalarFloat && c.Scalar != ScalarInt {
		return invalid("Scalar", `must be "float" or "int"`, string(c.Scalar))
	}
	return nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

func invalid(field, reason string, value any) error {
	return &errors.ValidationError{Type: "Config", Field: field, Reason: reason, Value: value}
}
