// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	strf "github.com/petenewcomb/strf-go"
	"github.com/petenewcomb/strf-go/internal/config"
	"github.com/petenewcomb/strf-go/internal/render"
	"github.com/petenewcomb/strf-go/internal/workload"
	"github.com/petenewcomb/strf-go/otstrf"
	"go.uber.org/zap"
)

// handleSimulate runs the workload in the request body, which uses the same
// YAML or JSON document format as workload files. With ?format=svg the
// response is the Gantt chart instead of the JSON result.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "svg" {
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("unsupported format %q", format))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, reqID, http.StatusRequestEntityTooLarge, CodeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	wl, err := config.Parse(body)
	if err != nil {
		s.respondWorkloadError(w, reqID, err)
		return
	}
	if len(wl.Jobs) > s.maxJobs {
		respondError(w, reqID, http.StatusRequestEntityTooLarge, CodeTooLarge,
			fmt.Sprintf("workload has %d jobs, limit is %d", len(wl.Jobs), s.maxJobs))
		return
	}
	chunks := 0
	for _, job := range wl.Jobs {
		chunks += strf.ChunkCount(job.Burst, wl.ChunkUnit)
	}
	if chunks > s.maxChunks {
		respondError(w, reqID, http.StatusRequestEntityTooLarge, CodeTooLarge,
			fmt.Sprintf("workload slices into %d chunks, limit is %d", chunks, s.maxChunks))
		return
	}

	res, err := otstrf.InstrumentedSimulate(r.Context(), "strf.server.simulate", wl.StrfJobs(), wl.Params())
	if err != nil {
		s.respondWorkloadError(w, reqID, err)
		return
	}

	if format == "svg" {
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := render.WriteSVG(w, res); err != nil {
			s.logger.Error("Rendering chart failed",
				zap.String("request_id", reqID),
				zap.Error(err))
		}
		return
	}
	respondOK(w, reqID, res)
}

func (s *Server) respondWorkloadError(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, strf.ErrInvalidParameter),
		errors.Is(err, strf.ErrInvalidJob),
		errors.Is(err, strf.ErrNoJobs):
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidWorkload, err.Error())
	default:
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	}
}

// handleRandomWorkload returns a generated workload document that can be
// posted back to /simulate, optionally edited.
func (s *Server) handleRandomWorkload(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	q := r.URL.Query()

	n, err := intParam(q.Get("jobs"), 5)
	if err != nil || n <= 0 || n > s.maxJobs {
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("jobs must be an integer in [1, %d]", s.maxJobs))
		return
	}
	var seed uint64
	if v := q.Get("seed"); v != "" {
		seed, err = strconv.ParseUint(v, 10, 64)
	}
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, CodeInvalidRequest, "seed must be an unsigned integer")
		return
	}

	jobs := workload.Random(workload.NewRand(seed), n)
	respondOK(w, reqID, config.FromJobs(strf.DefaultParams, jobs))
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
