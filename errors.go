//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package idkit

import (
	"errors"
	"fmt"
)

// Errors returned by the library. Use errors.Is to match them, the concrete
// error always carries the identifier family and the offending input.
var (
	// ErrInvalidArgument is malformed or out-of-range input to any constructor,
	// converter or generator.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidLength is a buffer of unexpected length.
	ErrInvalidLength = fmt.Errorf("%w: invalid length", ErrInvalidArgument)

	// ErrNotComparable is comparison against an incompatible type.
	ErrNotComparable = errors.New("not comparable")

	// ErrUnsupportedOperation is an accessor called on an identifier that
	// does not carry the requested field (e.g. time of the Nil UUID).
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrCannotDetermineVersion is an untyped identifier which version or
	// variant cannot be classified.
	ErrCannotDetermineVersion = errors.New("cannot determine version")
)

// Invalid builds ErrInvalidArgument with formatted details
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// InvalidLength builds ErrInvalidLength with formatted details
func InvalidLength(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLength, fmt.Sprintf(format, args...))
}

// Unsupported builds ErrUnsupportedOperation with formatted details
func Unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperation, fmt.Sprintf(format, args...))
}
