// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf_test

import (
	"encoding/json"
	"testing"

	strf "github.com/petenewcomb/strf-go"
	"github.com/stretchr/testify/require"
)

func TestProcessorIDNames(t *testing.T) {
	chk := require.New(t)
	chk.Equal("CPU1", strf.ProcessorID(0).String())
	chk.Equal("CPU12", strf.ProcessorID(11).String())

	data, err := json.Marshal(strf.GanttEvent{Processor: 2, JobID: "J1", Duration: 1})
	chk.NoError(err)
	chk.JSONEq(`{"startTime":0,"cpu":"CPU3","jobId":"J1","duration":1}`, string(data))

	var e strf.GanttEvent
	chk.NoError(json.Unmarshal(data, &e))
	chk.Equal(strf.ProcessorID(2), e.Processor)
}

func TestProcessorIDRejectsBadNames(t *testing.T) {
	chk := require.New(t)
	for _, name := range []string{"", "CPU", "CPU0", "GPU1", "CPUx", "1"} {
		var id strf.ProcessorID
		chk.Error(id.UnmarshalText([]byte(name)), name)
	}
}
