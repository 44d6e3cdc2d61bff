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
	"math/big"
	"strings"
)

// Crockford base-32 alphabet, omits I, L, O, U
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// digits used by math/big for base 32
const base32 = "0123456789abcdefghijklmnopqrstuv"

var toCrockford [256]byte

func init() {
	for i := 0; i < len(base32); i++ {
		toCrockford[base32[i]] = crockford[i]
	}
}

// EncodeCrockford32 renders big-endian bytes as Crockford base-32 digits,
// left padded with zeros to width.
func EncodeCrockford32(b []byte, width int) string {
	text := new(big.Int).SetBytes(b).Text(32)

	var sb strings.Builder
	sb.Grow(width)
	for i := len(text); i < width; i++ {
		sb.WriteByte('0')
	}
	for i := 0; i < len(text); i++ {
		sb.WriteByte(toCrockford[text[i]])
	}
	return sb.String()
}

// DecodeCrockford32 parses Crockford base-32 digits into big-endian buffer of
// size bytes. Decoding is case insensitive and tolerates typos I, L (as 1)
// and O (as 0).
func DecodeCrockford32(s string, size int) ([]byte, error) {
	n := new(big.Int)
	d := new(big.Int)

	for _, x := range s {
		v, ok := crockfordDigit(x)
		if !ok {
			return nil, Invalid("%q is not a Crockford base-32 digit in %q", x, s)
		}
		n.Lsh(n, 5)
		n.Or(n, d.SetInt64(int64(v)))
	}

	if n.BitLen() > size*8 {
		return nil, Invalid("%q exceeds %d bits", s, size*8)
	}

	b := make([]byte, size)
	n.FillBytes(b)
	return b, nil
}

func crockfordDigit(x rune) (byte, bool) {
	switch {
	case x >= '0' && x <= '9':
		return byte(x - '0'), true
	case x == 'O' || x == 'o':
		return 0, true
	case x == 'I' || x == 'i' || x == 'L' || x == 'l':
		return 1, true
	case x >= 'a' && x <= 'z':
		x = x - 'a' + 'A'
	}

	if x < 'A' || x > 'Z' {
		return 0, false
	}

	i := strings.IndexRune(crockford, x)
	if i < 0 {
		return 0, false
	}
	return byte(i), true
}
