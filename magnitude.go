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
	"encoding/json"
	"math"
	"math/big"
	"strconv"
)

// Magnitude is the integer representation of identifier. The value is kept
// as native int64 while it fits the signed 64-bit range, otherwise it is
// escalated to arbitrary precision. Escalation is a width upgrade, never an
// error.
type Magnitude struct {
	native int64
	large  *big.Int
}

// Native builds magnitude from native integer.
func Native(n int64) Magnitude {
	return Magnitude{native: n}
}

// Unsigned builds magnitude from unsigned native integer, escalating values
// above math.MaxInt64.
func Unsigned(n uint64) Magnitude {
	if n <= math.MaxInt64 {
		return Magnitude{native: int64(n)}
	}
	return Magnitude{large: new(big.Int).SetUint64(n)}
}

// Big builds magnitude from arbitrary precision integer. The value is
// normalised to native representation when it fits.
func Big(n *big.Int) Magnitude {
	if n.IsInt64() {
		return Magnitude{native: n.Int64()}
	}
	return Magnitude{large: new(big.Int).Set(n)}
}

// MagnitudeOf interprets bytes as big-endian unsigned integer
func MagnitudeOf(b []byte) Magnitude {
	if len(b) <= 8 {
		var n uint64
		for _, x := range b {
			n = n<<8 | uint64(x)
		}
		return Unsigned(n)
	}
	return Big(new(big.Int).SetBytes(b))
}

// ParseMagnitude parses non-negative decimal integer
func ParseMagnitude(s string) (Magnitude, error) {
	if len(s) == 0 {
		return Magnitude{}, Invalid("integer is empty")
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return Magnitude{}, Invalid("integer %q is not a non-negative decimal", s)
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Native(n), nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Magnitude{}, Invalid("integer %q is not a non-negative decimal", s)
	}
	return Magnitude{large: n}, nil
}

// IsNative is true if value fits signed 64-bit integer
func (m Magnitude) IsNative() bool { return m.large == nil }

// Int64 returns native value, false if magnitude is escalated
func (m Magnitude) Int64() (int64, bool) {
	if m.large != nil {
		return 0, false
	}
	return m.native, true
}

// Uint64 returns value as unsigned integer, false if it does not fit 64 bits
// or the value is negative.
func (m Magnitude) Uint64() (uint64, bool) {
	if m.large == nil {
		return uint64(m.native), m.native >= 0
	}
	if m.large.Sign() < 0 || !m.large.IsUint64() {
		return 0, false
	}
	return m.large.Uint64(), true
}

// BigInt returns a copy of value as arbitrary precision integer
func (m Magnitude) BigInt() *big.Int {
	if m.large == nil {
		return big.NewInt(m.native)
	}
	return new(big.Int).Set(m.large)
}

// Sign of value
func (m Magnitude) Sign() int {
	if m.large == nil {
		switch {
		case m.native < 0:
			return -1
		case m.native > 0:
			return 1
		default:
			return 0
		}
	}
	return m.large.Sign()
}

// Cmp compares magnitudes numerically
func (m Magnitude) Cmp(x Magnitude) int {
	if m.large == nil && x.large == nil {
		switch {
		case m.native < x.native:
			return -1
		case m.native > x.native:
			return 1
		default:
			return 0
		}
	}
	return m.BigInt().Cmp(x.BigInt())
}

// String returns decimal representation
func (m Magnitude) String() string {
	if m.large == nil {
		return strconv.FormatInt(m.native, 10)
	}
	return m.large.String()
}

// Bytes renders value as big-endian buffer of exactly width bytes. The value
// must be non-negative and fit the width.
func (m Magnitude) Bytes(width int) ([]byte, error) {
	if m.Sign() < 0 {
		return nil, Invalid("integer %s is negative", m)
	}

	b := make([]byte, width)
	if m.large == nil {
		n := uint64(m.native)
		for i := width - 1; i >= 0 && n > 0; i-- {
			b[i] = byte(n)
			n >>= 8
		}
		if n != 0 {
			return nil, Invalid("integer %s exceeds %d bits", m, width*8)
		}
		return b, nil
	}

	if m.large.BitLen() > width*8 {
		return nil, Invalid("integer %s exceeds %d bits", m, width*8)
	}
	m.large.FillBytes(b)
	return b, nil
}

// MarshalJSON encodes native magnitude as JSON number and escalated one as
// decimal string.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if m.large == nil {
		return []byte(strconv.FormatInt(m.native, 10)), nil
	}
	return json.Marshal(m.large.String())
}

// UnmarshalJSON decodes either JSON number or decimal string
func (m *Magnitude) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}

	val, err := ParseMagnitude(s)
	if err != nil {
		return err
	}
	*m = val
	return nil
}
