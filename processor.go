// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

import (
	"fmt"
	"strconv"
	"strings"
)

// ProcessorID is the zero-based index of a processor slot. It prints and
// marshals as CPU1, CPU2, and so on.
type ProcessorID int

func (id ProcessorID) String() string {
	return "CPU" + strconv.Itoa(int(id)+1)
}

func (id ProcessorID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ProcessorID) UnmarshalText(text []byte) error {
	s := string(text)
	n, err := strconv.Atoi(strings.TrimPrefix(s, "CPU"))
	if err != nil || !strings.HasPrefix(s, "CPU") || n < 1 {
		return fmt.Errorf("invalid processor name %q", s)
	}
	*id = ProcessorID(n - 1)
	return nil
}
