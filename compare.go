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
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Identifier is the common surface of every identifier family
type Identifier interface {
	// canonical big-endian bytes
	Bytes() []byte
	// display string
	String() string
}

// MixedEndian is implemented by identifiers which canonical bytes do not
// follow display order (e.g. Microsoft GUID). They are only compared by
// display string.
type MixedEndian interface {
	MixedEndian() bool
}

func isMixedEndian(x any) bool {
	m, ok := x.(MixedEndian)
	return ok && m.MixedEndian()
}

// Compare identifier with other value.
//
// Identifiers of same byte width are compared by canonical bytes, unsigned
// and lexicographically, unless any of them is mixed endian. Anything else
// is coerced to string and compared with the display string of a, case
// insensitive. Values that cannot be coerced fail with ErrNotComparable.
func Compare(a Identifier, b any) (int, error) {
	if other, ok := b.(Identifier); ok {
		if !isMixedEndian(a) && !isMixedEndian(other) {
			x, y := a.Bytes(), other.Bytes()
			if len(x) == len(y) {
				return bytes.Compare(x, y), nil
			}
		}
		return compareString(a.String(), other.String()), nil
	}

	s, ok := coerce(b)
	if !ok {
		return 0, fmt.Errorf("%w: %T with %T", ErrNotComparable, a, b)
	}
	return compareString(a.String(), s), nil
}

// Equal is true if Compare returns 0, incomparable values are not equal
func Equal(a Identifier, b any) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}

func compareString(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func coerce(x any) (string, bool) {
	switch v := x.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	default:
		return "", false
	}
}
