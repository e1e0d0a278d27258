// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

// Chunks slices burstTime into an ordered sequence of durations no longer
// than chunkUnit. Every chunk but the last equals chunkUnit and the sequence
// sums to burstTime. Both arguments must be positive and burstTime/chunkUnit
// at most MaxChunksPerJob; callers validate them first with Validate.
func Chunks(burstTime, chunkUnit float64) []float64 {
	if !positiveFinite(burstTime) {
		panic("burst time must be positive")
	}
	if !positiveFinite(chunkUnit) {
		panic("chunk unit must be positive")
	}
	if burstTime/chunkUnit > MaxChunksPerJob {
		panic("too many chunks")
	}
	chunks := make([]float64, 0, ChunkCount(burstTime, chunkUnit)+1)
	for remaining := burstTime; remaining > 0; {
		chunk := min(chunkUnit, remaining)
		chunks = append(chunks, chunk)
		remaining -= chunk
	}
	return chunks
}
