// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr provides a string type for declaring sentinel errors as
// constants.
package cerr

// Error is an error whose message is the string itself. Values compare equal
// by message, so they work with errors.Is when declared as constants.
type Error string

func (e Error) Error() string {
	return string(e)
}
