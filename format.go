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

// Format is a surface representation of identifier
type Format int

const (
	FormatUnknown Format = iota
	// raw canonical bytes
	FormatBytes
	// lower case hexadecimal, fixed width
	FormatHex
	// family specific display string
	FormatString
	// unsigned big-endian integer, in decimal
	FormatInteger
)

func (f Format) String() string {
	switch f {
	case FormatBytes:
		return "bytes"
	case FormatHex:
		return "hex"
	case FormatString:
		return "string"
	case FormatInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// Lengths of fixed width formats within one identifier family. Zero length
// declares that format as variable width, it is never derived from length.
type Lengths struct {
	Bytes  int
	Hex    int
	String int
}

// FormatOf derives the format of a value from its length. Lengths are unique
// within the family, FormatUnknown is returned for any other length.
func (l Lengths) FormatOf(n int) Format {
	switch {
	case n == 0:
		return FormatUnknown
	case n == l.Bytes:
		return FormatBytes
	case n == l.Hex:
		return FormatHex
	case n == l.String:
		return FormatString
	default:
		return FormatUnknown
	}
}
