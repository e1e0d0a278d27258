// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petenewcomb/strf-go/internal/server"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status    string           `json:"status"`
	RequestID string           `json:"request_id"`
	Data      json.RawMessage  `json:"data"`
	Error     *server.APIError `json:"error"`
}

func do(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body=%s", w.Body.String())
	}
	return w, env
}

func TestHealth(t *testing.T) {
	chk := require.New(t)
	w, env := do(t, server.New(nil), http.MethodGet, "/healthz", "")
	chk.Equal(http.StatusOK, w.Code)
	chk.Equal("ok", env.Status)
	chk.True(strings.HasPrefix(env.RequestID, "req_"))
	chk.Equal(env.RequestID, w.Header().Get("X-Request-ID"))

	var data struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	chk.NoError(json.Unmarshal(env.Data, &data))
	chk.Equal("healthy", data.Status)
	chk.Equal(server.Version, data.Version)
}

const shortestFirst = `{
  "cpus": 1, "chunk_unit": 1, "quantum": 1,
  "jobs": [{"id": "J1", "arrival": 0, "burst": 2}, {"id": "J2", "arrival": 0, "burst": 1}]
}`

func TestSimulate(t *testing.T) {
	chk := require.New(t)
	w, env := do(t, server.New(nil), http.MethodPost, "/simulate", shortestFirst)
	chk.Equal(http.StatusOK, w.Code, w.Body.String())
	chk.Equal("ok", env.Status)

	var data struct {
		GanttData []struct {
			StartTime float64 `json:"startTime"`
			CPU       string  `json:"cpu"`
			JobID     string  `json:"jobId"`
		} `json:"ganttData"`
		AverageTurnaround float64 `json:"averageTurnaround"`
	}
	chk.NoError(json.Unmarshal(env.Data, &data))
	chk.Len(data.GanttData, 3)
	chk.Equal("J2", data.GanttData[0].JobID)
	chk.Equal("CPU1", data.GanttData[0].CPU)
	chk.Equal(2.0, data.AverageTurnaround)
}

func TestSimulateYAML(t *testing.T) {
	chk := require.New(t)
	body := "cpus: 2\njobs:\n  - {arrival: 0, burst: 1}\n  - {arrival: 0, burst: 1}\n"
	w, env := do(t, server.New(nil), http.MethodPost, "/simulate", body)
	chk.Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Makespan float64 `json:"makespan"`
		Jobs     []struct {
			ID string `json:"id"`
		} `json:"jobs"`
	}
	chk.NoError(json.Unmarshal(env.Data, &data))
	chk.Equal(1.0, data.Makespan)
	chk.Equal("J1", data.Jobs[0].ID)
	chk.Equal("J2", data.Jobs[1].ID)
}

func TestSimulateSVG(t *testing.T) {
	chk := require.New(t)
	w, _ := do(t, server.New(nil), http.MethodPost, "/simulate?format=svg", shortestFirst)
	chk.Equal(http.StatusOK, w.Code)
	chk.Equal("image/svg+xml", w.Header().Get("Content-Type"))
	chk.Contains(w.Body.String(), "<svg")
}

func TestSimulateErrors(t *testing.T) {
	srv := server.New(nil, server.WithMaxBodyBytes(256), server.WithMaxJobs(2), server.WithMaxChunks(100))
	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"syntax", "/simulate", "{", http.StatusBadRequest, server.CodeInvalidRequest},
		{"no jobs", "/simulate", `{"cpus": 1}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"bad cpus", "/simulate", `{"cpus": -2, "jobs": [{"burst": 1}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"bad burst", "/simulate", `{"jobs": [{"burst": 0}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"zero cpus", "/simulate", `{"cpus": 0, "jobs": [{"burst": 1}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"zero chunk unit", "/simulate", `{"chunk_unit": 0, "jobs": [{"burst": 1}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"zero quantum", "/simulate", `{"quantum": 0, "jobs": [{"burst": 1}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"chunks per job", "/simulate", `{"chunk_unit": 1e-5, "jobs": [{"burst": 1000}]}`, http.StatusBadRequest, server.CodeInvalidWorkload},
		{"too many chunks", "/simulate", `{"chunk_unit": 0.5, "jobs": [{"burst": 40}, {"burst": 30}]}`, http.StatusRequestEntityTooLarge, server.CodeTooLarge},
		{"format", "/simulate?format=png", shortestFirst, http.StatusBadRequest, server.CodeInvalidRequest},
		{"too many jobs", "/simulate", `{"jobs": [{"burst": 1}, {"burst": 1}, {"burst": 1}]}`, http.StatusRequestEntityTooLarge, server.CodeTooLarge},
		{"too large", "/simulate", strings.Repeat(" ", 300) + shortestFirst, http.StatusRequestEntityTooLarge, server.CodeTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			w, env := do(t, srv, http.MethodPost, tc.path, tc.body)
			chk.Equal(tc.status, w.Code, w.Body.String())
			chk.Equal("error", env.Status)
			chk.NotNil(env.Error)
			chk.Equal(tc.code, env.Error.Code)
		})
	}
}

func TestRandomWorkload(t *testing.T) {
	chk := require.New(t)
	srv := server.New(nil)
	w, env := do(t, srv, http.MethodGet, "/workloads/random?jobs=4&seed=7", "")
	chk.Equal(http.StatusOK, w.Code)

	var data struct {
		CPUs int `json:"cpus"`
		Jobs []struct {
			ID    string  `json:"id"`
			Burst float64 `json:"burst"`
		} `json:"jobs"`
	}
	chk.NoError(json.Unmarshal(env.Data, &data))
	chk.Equal(2, data.CPUs)
	chk.Len(data.Jobs, 4)
	chk.Equal("J4", data.Jobs[3].ID)

	// The generated document is accepted by /simulate.
	w, _ = do(t, srv, http.MethodPost, "/simulate", string(env.Data))
	chk.Equal(http.StatusOK, w.Code, w.Body.String())

	// Same seed, same workload.
	_, again := do(t, srv, http.MethodGet, "/workloads/random?jobs=4&seed=7", "")
	chk.JSONEq(string(env.Data), string(again.Data))

	w, env = do(t, srv, http.MethodGet, "/workloads/random?jobs=0", "")
	chk.Equal(http.StatusBadRequest, w.Code)
	chk.Equal(server.CodeInvalidRequest, env.Error.Code)

	w, _ = do(t, srv, http.MethodGet, "/workloads/random?seed=x", "")
	chk.Equal(http.StatusBadRequest, w.Code)
}

func TestRequestLogging(t *testing.T) {
	chk := require.New(t)
	core, logs := observer.New(zapcore.InfoLevel)
	srv := server.New(zap.New(core))

	w, env := do(t, srv, http.MethodGet, "/healthz", "")
	chk.Equal(http.StatusOK, w.Code)

	entries := logs.FilterMessage("Request").All()
	chk.Len(entries, 1)
	fields := entries[0].ContextMap()
	chk.Equal("GET", fields["method"])
	chk.Equal("/healthz", fields["path"])
	chk.Equal(int64(http.StatusOK), fields["status"])
	chk.Equal(env.RequestID, fields["request_id"])
	chk.Equal("server", fields["component"])
}

func TestOptionPanics(t *testing.T) {
	chk := require.New(t)
	chk.PanicsWithValue("max body bytes must be positive", func() { server.WithMaxBodyBytes(0) })
	chk.PanicsWithValue("max jobs must be positive", func() { server.WithMaxJobs(-1) })
	chk.PanicsWithValue("max chunks must be positive", func() { server.WithMaxChunks(0) })
}

func TestListenAndServeShutdown(t *testing.T) {
	chk := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chk.NoError(server.New(nil).ListenAndServe(ctx, "127.0.0.1:0", time.Second))
}

func TestListenAndServeBadAddr(t *testing.T) {
	chk := require.New(t)
	err := server.New(nil).ListenAndServe(context.Background(), "127.0.0.1:-1", time.Second)
	chk.Error(err)
}
