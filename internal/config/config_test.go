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

package config

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"dirpx.dev/dxpred/dxcore/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.MaxDepth)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, ScalarFloat, cfg.Scalar)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		EnvMaxDepth:   "32",
		EnvWorkers:    " 4 ",
		EnvLogLevel:   "debug",
		EnvListenAddr: "127.0.0.1:9000",
		EnvScalar:     "INT",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		MaxDepth:   32,
		Workers:    4,
		LogLevel:   slog.LevelDebug,
		ListenAddr: "127.0.0.1:9000",
		Scalar:     ScalarInt,
	}, cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]string
		field string
	}{
		{"depth not a number", map[string]string{EnvMaxDepth: "deep"}, EnvMaxDepth},
		{"negative depth", map[string]string{EnvMaxDepth: "-1"}, "MaxDepth"},
		{"zero workers", map[string]string{EnvWorkers: "0"}, "Workers"},
		{"unknown level", map[string]string{EnvLogLevel: "loud"}, EnvLogLevel},
		{"unknown scalar", map[string]string{EnvScalar: "decimal"}, "Scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookup(tt.vars))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid Config."+tt.field)
		})
	}

	_, err := FromEnv(lookup(map[string]string{EnvMaxDepth: "x", EnvWorkers: "y"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxDepth)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.env"))
		assert.NoError(t, err)
	})

	t.Run("dotenv file", func(t *testing.T) {
		// Register restoration, then clear the variables so the file applies.
		t.Setenv(EnvWorkers, "")
		t.Setenv(EnvScalar, "")
		require.NoError(t, os.Unsetenv(EnvWorkers))
		require.NoError(t, os.Unsetenv(EnvScalar))
		t.Setenv(EnvMaxDepth, "12")

		path := filepath.Join(dir, "test.env")
		content := EnvWorkers + "=3\n" + EnvScalar + "=int\n" + EnvMaxDepth + "=99\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, ScalarInt, cfg.Scalar)
		assert.Equal(t, 12, cfg.MaxDepth, "the environment wins over the file")
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.ListenAddr = ""

	var verr *errors.ValidationError
	require.True(t, stderrors.As(cfg.Validate(), &verr))
	assert.Equal(t, "ListenAddr", verr.Field)

	cfg = Default()
	cfg.MaxDepth = 0
	assert.NoError(t, cfg.Validate(), "zero disables the depth limit")
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	cfg.Logger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())

	cfg.LogLevel = slog.LevelDebug
	cfg.Logger(&buf).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}
