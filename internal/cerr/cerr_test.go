// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/petenewcomb/strf-go/internal/cerr"
	"github.com/stretchr/testify/require"
)

const errExample = cerr.Error("example")

func TestError(t *testing.T) {
	chk := require.New(t)
	chk.Equal("example", errExample.Error())
	wrapped := fmt.Errorf("context: %w", errExample)
	chk.True(errors.Is(wrapped, errExample))
	chk.True(errors.Is(wrapped, cerr.Error("example")))
	chk.False(errors.Is(wrapped, cerr.Error("other")))
}
