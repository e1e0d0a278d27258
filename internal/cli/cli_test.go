// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petenewcomb/strf-go/internal/cli"
	"github.com/petenewcomb/strf-go/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// execute runs strfsim with args and returns what it wrote to stdout and
// stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Commands that fail skip the post-run hook that puts the global logger
	// back.
	t.Cleanup(zap.ReplaceGlobals(zap.L()))

	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeWorkload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const shortestFirst = `
cpus: 1
chunk_unit: 1
quantum: 1
jobs:
  - {id: J1, arrival: 0, burst: 2}
  - {id: J2, arrival: 0, burst: 1}
`

func TestRunText(t *testing.T) {
	chk := require.New(t)
	stdout, _, err := execute(t, "run", writeWorkload(t, shortestFirst))
	chk.NoError(err)
	chk.Contains(stdout, "== Results ==\n")
	chk.Contains(stdout, "average turnaround: 2.00\n")
	chk.Contains(stdout, "0.0-1.0 CPU1 J2\n1.0-2.0 CPU1 J1\n2.0-3.0 CPU1 J1\n")
	chk.Contains(stdout, "t=0.0 J2(1.0) J1(2.0)\n")
}

func TestRunJSONWithOverrides(t *testing.T) {
	chk := require.New(t)
	stdout, _, err := execute(t, "run", "--format", "json", "--cpus", "2", writeWorkload(t, shortestFirst))
	chk.NoError(err)

	var res struct {
		Params struct {
			NumCPUs int `json:"numCPUs"`
		} `json:"params"`
		Makespan float64 `json:"makespan"`
	}
	chk.NoError(json.Unmarshal([]byte(stdout), &res))
	chk.Equal(2, res.Params.NumCPUs)
	chk.Equal(2.0, res.Makespan)
}

func TestRunRandomIsDeterministic(t *testing.T) {
	chk := require.New(t)
	first, _, err := execute(t, "run", "--random", "6", "--seed", "42")
	chk.NoError(err)
	second, _, err := execute(t, "run", "--random", "6", "--seed", "42")
	chk.NoError(err)
	chk.Equal(first, second)
	chk.Contains(first, "J6")
}

func TestRunSVGAndTrace(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	svg := filepath.Join(dir, "gantt.svg")
	turnaround := filepath.Join(dir, "turnaround.svg")
	_, stderr, err := execute(t, "run", "--svg", svg, "--turnaround-svg", turnaround, "--trace", writeWorkload(t, shortestFirst))
	chk.NoError(err)

	for _, path := range []string{svg, turnaround} {
		data, err := os.ReadFile(path)
		chk.NoError(err)
		chk.Contains(string(data), "<svg")
	}

	chk.Contains(stderr, `"Name": "strfsim.run"`)
	chk.Contains(stderr, "strf.makespan")
}

func TestRunLogging(t *testing.T) {
	chk := require.New(t)
	_, stderr, err := execute(t, "--log-level", "info", "--log-format", "json", "run", writeWorkload(t, shortestFirst))
	chk.NoError(err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]any
		chk.NoError(json.Unmarshal([]byte(line), &entry), line)
		if entry["msg"] == "Simulation completed" {
			found = true
			chk.Equal("info", entry["level"])
			chk.Equal("strfsim.run", entry["operation"])
		}
	}
	chk.True(found, stderr)
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		msg  string
	}{
		{"no workload", []string{"run"}, "a workload file or --random is required"},
		{"both", []string{"run", "--random", "2", "x.yaml"}, "mutually exclusive"},
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "none.yaml")}, "reading workload file"},
		{"format", []string{"run", "--format", "xml", "--random", "2"}, "invalid --format"},
		{"bad override", []string{"run", "--random", "2", "--quantum", "0"}, "invalid parameter"},
		{"log level", []string{"--log-level", "loud", "run", "--random", "2"}, "invalid --log-level"},
		{"log format", []string{"--log-format", "xml", "run", "--random", "2"}, "invalid --log-format"},
		{"generate jobs", []string{"generate", "--jobs", "0"}, "--jobs must be positive"},
		{"serve max jobs", []string{"serve", "--max-jobs", "0"}, "--max-jobs must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			require.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestGenerate(t *testing.T) {
	chk := require.New(t)
	stdout, _, err := execute(t, "generate", "--jobs", "3", "--seed", "9", "--cpus", "4")
	chk.NoError(err)

	w, err := config.Parse([]byte(stdout))
	chk.NoError(err)
	chk.Equal(4, w.CPUs)
	chk.Len(w.Jobs, 3)
	chk.Equal("J3", w.Jobs[2].ID)

	// The file round-trips through run.
	path := filepath.Join(t.TempDir(), "gen.yaml")
	_, _, err = execute(t, "generate", "--jobs", "3", "--seed", "9", "-o", path)
	chk.NoError(err)
	_, _, err = execute(t, "run", path)
	chk.NoError(err)
}
