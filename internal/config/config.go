// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package config loads simulation workloads from YAML or JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	strf "github.com/petenewcomb/strf-go"
	"github.com/petenewcomb/strf-go/internal/workload"
	"gopkg.in/yaml.v3"
)

// Workload is the on-disk form of a simulation request. Parameters absent
// from the document fall back to strf.DefaultParams and empty job ids are
// filled in by position (J1, J2, ...). A parameter given explicitly as zero
// is rejected like any other invalid value.
type Workload struct {
	CPUs      int     `yaml:"cpus" json:"cpus"`
	ChunkUnit float64 `yaml:"chunk_unit" json:"chunk_unit"`
	Quantum   float64 `yaml:"quantum" json:"quantum"`
	Jobs      []Job   `yaml:"jobs" json:"jobs"`
}

// Job is one entry in a Workload's job list.
type Job struct {
	ID      string  `yaml:"id" json:"id"`
	Arrival float64 `yaml:"arrival" json:"arrival"`
	Burst   float64 `yaml:"burst" json:"burst"`
}

// Load reads a workload file. Files ending in .json are parsed as JSON and
// everything else as YAML; YAML is a superset of JSON, so both go through the
// YAML decoder.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload file: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		ext := strings.ToLower(filepath.Ext(path))
		return nil, fmt.Errorf("parsing %s workload file %s: %w", strings.TrimPrefix(ext, "."), path, err)
	}
	return w, nil
}

// document mirrors Workload with pointer parameters so that an absent field
// can be told apart from an explicit zero.
type document struct {
	CPUs      *int     `yaml:"cpus"`
	ChunkUnit *float64 `yaml:"chunk_unit"`
	Quantum   *float64 `yaml:"quantum"`
	Jobs      []Job    `yaml:"jobs"`
}

// Parse decodes and validates a workload document.
func Parse(data []byte) (*Workload, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	w := doc.withDefaults()
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (d *document) withDefaults() *Workload {
	w := &Workload{
		CPUs:      strf.DefaultParams.NumCPUs,
		ChunkUnit: strf.DefaultParams.ChunkUnit,
		Quantum:   strf.DefaultParams.QuantumTime,
		Jobs:      d.Jobs,
	}
	if d.CPUs != nil {
		w.CPUs = *d.CPUs
	}
	if d.ChunkUnit != nil {
		w.ChunkUnit = *d.ChunkUnit
	}
	if d.Quantum != nil {
		w.Quantum = *d.Quantum
	}
	for i := range w.Jobs {
		if w.Jobs[i].ID == "" {
			w.Jobs[i].ID = workload.JobID(i)
		}
	}
	return w
}

// validate checks the workload with the same rules Simulate applies so that
// errors name the file rather than surfacing later.
func (w *Workload) validate() error {
	if len(w.Jobs) == 0 {
		return w.Params().Validate()
	}
	return strf.Validate(w.StrfJobs(), w.Params())
}

// Params returns the workload's simulation parameters.
func (w *Workload) Params() strf.Params {
	return strf.Params{
		NumCPUs:     w.CPUs,
		ChunkUnit:   w.ChunkUnit,
		QuantumTime: w.Quantum,
	}
}

// StrfJobs returns the workload's jobs in file order.
func (w *Workload) StrfJobs() []strf.Job {
	jobs := make([]strf.Job, len(w.Jobs))
	for i, j := range w.Jobs {
		jobs[i] = strf.Job{ID: j.ID, ArrivalTime: j.Arrival, BurstTime: j.Burst}
	}
	return jobs
}

// FromJobs builds a workload from parameters and jobs, the inverse of Params
// and StrfJobs.
func FromJobs(params strf.Params, jobs []strf.Job) *Workload {
	w := &Workload{
		CPUs:      params.NumCPUs,
		ChunkUnit: params.ChunkUnit,
		Quantum:   params.QuantumTime,
		Jobs:      make([]Job, len(jobs)),
	}
	for i, j := range jobs {
		w.Jobs[i] = Job{ID: j.ID, Arrival: j.ArrivalTime, Burst: j.BurstTime}
	}
	return w
}

// Marshal encodes the workload as YAML.
func (w *Workload) Marshal() ([]byte, error) {
	return yaml.Marshal(w)
}
