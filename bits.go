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
	"math"
	"math/big"
)

// Variant is the top bits tag of UUID clock sequence high word
//
//	0xx  NCS backward compatibility
//	10x  RFC 9562
//	110  Microsoft
//	111  Future
type Variant int

const (
	VariantNCS Variant = iota
	VariantRFC9562
	VariantMicrosoft
	VariantFuture
)

func (v Variant) String() string {
	switch v {
	case VariantNCS:
		return "NCS"
	case VariantRFC9562:
		return "RFC9562"
	case VariantMicrosoft:
		return "Microsoft"
	case VariantFuture:
		return "Future"
	default:
		return "Unknown"
	}
}

// ApplyVersionVariant returns a copy of 16 bytes with version bits 48-51 and
// variant bits of clock sequence high word replaced. Version 0 leaves version
// bits untouched (Nil, Max and nonstandard values carry no version).
func ApplyVersionVariant(b []byte, version int, variant Variant) ([]byte, error) {
	if len(b) != 16 {
		return nil, InvalidLength("expected 16 bytes, got %d", len(b))
	}
	if version < 0 || version > 15 {
		return nil, Invalid("version %d does not fit 4 bits", version)
	}

	out := make([]byte, 16)
	copy(out, b)

	if version != 0 {
		w := word(out, 6)
		w = w&0x0fff | uint16(version)<<12
		setWord(out, 6, w)
	}

	w := word(out, 8)
	switch variant {
	case VariantNCS:
		w = w & 0x7fff
	case VariantRFC9562:
		w = w&0x3fff | 0x8000
	case VariantMicrosoft:
		w = w&0x1fff | 0xc000
	case VariantFuture:
		w = w&0x1fff | 0xe000
	default:
		return nil, Invalid("unknown variant %d", variant)
	}
	setWord(out, 8, w)

	return out, nil
}

// ExtractVersion reads version bits 48-51. Nil and Max values must be
// special-cased by the caller before.
func ExtractVersion(b []byte) (int, error) {
	if len(b) != 16 {
		return 0, InvalidLength("expected 16 bytes, got %d", len(b))
	}
	return int(word(b, 6) >> 12), nil
}

// ExtractVariant reads variant bits of clock sequence high word
func ExtractVariant(b []byte) (Variant, error) {
	if len(b) != 16 {
		return 0, InvalidLength("expected 16 bytes, got %d", len(b))
	}

	w := word(b, 8)
	switch {
	case w>>13 == 0x7:
		return VariantFuture, nil
	case w>>13 == 0x6:
		return VariantMicrosoft, nil
	case w>>14 == 0x2:
		return VariantRFC9562, nil
	default:
		return VariantNCS, nil
	}
}

// IsNil is true if all bits are 0
func IsNil(b []byte) bool {
	for _, x := range b {
		if x != 0x00 {
			return false
		}
	}
	return len(b) > 0
}

// IsMax is true if all bits are 1
func IsMax(b []byte) bool {
	for _, x := range b {
		if x != 0xff {
			return false
		}
	}
	return len(b) > 0
}

// big-endian 16-bit word at offset
func word(b []byte, at int) uint16 {
	return uint16(b[at])<<8 | uint16(b[at+1])
}

func setWord(b []byte, at int, w uint16) {
	b[at] = byte(w >> 8)
	b[at+1] = byte(w)
}

// Field is a bit field of 64-bit word
//
//	|--------|--- Bits ---|--- Shift ---|
//	63                                  0
type Field struct {
	Shift uint
	Bits  uint
}

// Max value representable by the field
func (f Field) Max() uint64 {
	if f.Bits >= 64 {
		return math.MaxUint64
	}
	return 1<<f.Bits - 1
}

// Get extracts field from word
func (f Field) Get(w uint64) uint64 {
	return (w >> f.Shift) & f.Max()
}

// Put replaces field at word with the value (masked to field width)
func (f Field) Put(w, v uint64) uint64 {
	m := f.Max() << f.Shift
	return w&^m | (v<<f.Shift)&m
}

// Pack left-shifts t into position and ORs remaining bits. The composition
// is done with native integers while the result fits the signed 64-bit
// range, the overflow is detected by shifting back and comparing with the
// original value. On overflow the same composition is recomputed with
// arbitrary precision.
func Pack(t uint64, shift uint, rest uint64) Magnitude {
	if shift < 64 {
		x := t << shift
		if x>>shift == t && x|rest <= math.MaxInt64 {
			return Native(int64(x | rest))
		}
	}

	n := new(big.Int).SetUint64(t)
	n.Lsh(n, shift)
	n.Or(n, new(big.Int).SetUint64(rest))
	return Big(n)
}
