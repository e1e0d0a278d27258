// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf_test

import (
	"testing"

	strf "github.com/petenewcomb/strf-go"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestChunksExactMultiple(t *testing.T) {
	chk := require.New(t)
	chk.Equal([]float64{1, 1, 1}, strf.Chunks(3, 1))
}

func TestChunksRemainder(t *testing.T) {
	chk := require.New(t)
	chk.Equal([]float64{1, 1, 0.5}, strf.Chunks(2.5, 1))
}

func TestChunksUnitLargerThanBurst(t *testing.T) {
	chk := require.New(t)
	chk.Equal([]float64{2.5}, strf.Chunks(2.5, 4))
}

func TestChunksPreconditions(t *testing.T) {
	chk := require.New(t)
	chk.PanicsWithValue("burst time must be positive", func() {
		strf.Chunks(0, 1)
	})
	chk.PanicsWithValue("chunk unit must be positive", func() {
		strf.Chunks(1, -1)
	})
	// Subtracting 1 from 1e17 leaves it unchanged.
	chk.PanicsWithValue("too many chunks", func() {
		strf.Chunks(1e17, 1)
	})
	chk.PanicsWithValue("too many chunks", func() {
		strf.Chunks(1e3, 1e-5)
	})
}

func TestChunksAtLimit(t *testing.T) {
	chk := require.New(t)
	chunks := strf.Chunks(strf.MaxChunksPerJob, 1)
	chk.Len(chunks, strf.MaxChunksPerJob)
	chk.Equal(strf.MaxChunksPerJob, strf.ChunkCount(strf.MaxChunksPerJob, 1))
	chk.Equal(3, strf.ChunkCount(2.5, 1))
}

func TestChunksProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		burst := rapid.Float64Range(0.01, 100).Draw(t, "burst")
		unit := rapid.Float64Range(0.01, 10).Draw(t, "unit")
		chunks := strf.Chunks(burst, unit)

		chk := require.New(t)
		chk.NotEmpty(chunks)
		sum := 0.0
		for i, c := range chunks {
			chk.Greater(c, 0.0)
			chk.LessOrEqual(c, unit)
			if i < len(chunks)-1 {
				chk.Equal(unit, c, "only the final chunk may be shorter than the unit")
			}
			sum += c
		}
		chk.InDelta(burst, sum, 1e-9*burst)
	})
}
