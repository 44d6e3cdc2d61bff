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
	"encoding/hex"
	"strings"
)

// Display is family specific display grammar
type Display interface {
	Encode(b []byte) string
	Decode(s string) ([]byte, error)
}

// Codec converts identifier of one family between representations. The
// canonical bytes are the only hub, each representation is decoded to bytes
// and encoded from bytes, nothing is re-encoded through intermediate text.
type Codec struct {
	Family  string
	Size    int
	Lengths Lengths
	Display Display
}

// Parse decodes value which format is derived from its length
func (c Codec) Parse(value string) ([]byte, error) {
	f := c.Lengths.FormatOf(len(value))
	if f == FormatUnknown {
		return nil, Invalid("%s: cannot derive format of %q from length %d", c.Family, value, len(value))
	}
	return c.Decode(f, value)
}

// Decode value of known format into canonical bytes
func (c Codec) Decode(f Format, value string) ([]byte, error) {
	switch f {
	case FormatBytes:
		if len(value) != c.Size {
			return nil, InvalidLength("%s: expected %d bytes, got %d", c.Family, c.Size, len(value))
		}
		return []byte(value), nil
	case FormatHex:
		return c.decodeHex(value)
	case FormatString:
		return c.Display.Decode(value)
	case FormatInteger:
		m, err := ParseMagnitude(value)
		if err != nil {
			return nil, Invalid("%s: %q is not an integer", c.Family, value)
		}
		return c.DecodeInteger(m)
	default:
		return nil, Invalid("%s: unknown format of %q", c.Family, value)
	}
}

// DecodeInteger converts non-negative integer into canonical bytes, the
// value must fit family's bit width.
func (c Codec) DecodeInteger(m Magnitude) ([]byte, error) {
	b, err := m.Bytes(c.Size)
	if err != nil {
		return nil, Invalid("%s: integer %s is out of range [0, 2^%d)", c.Family, m, c.Size*8)
	}
	return b, nil
}

// Encode canonical bytes into representation
func (c Codec) Encode(f Format, b []byte) (string, error) {
	if len(b) != c.Size {
		return "", InvalidLength("%s: expected %d bytes, got %d", c.Family, c.Size, len(b))
	}

	switch f {
	case FormatBytes:
		return string(b), nil
	case FormatHex:
		return hex.EncodeToString(b), nil
	case FormatString:
		return c.Display.Encode(b), nil
	case FormatInteger:
		return MagnitudeOf(b).String(), nil
	default:
		return "", Invalid("%s: unknown format %d", c.Family, f)
	}
}

// Convert value between formats
func (c Codec) Convert(value string, from, to Format) (string, error) {
	b, err := c.Decode(from, value)
	if err != nil {
		return "", err
	}
	return c.Encode(to, b)
}

func (c Codec) decodeHex(value string) ([]byte, error) {
	if len(value) != 2*c.Size || !IsHex(value) {
		return nil, Invalid("%s: %q is not %d hexadecimal digits", c.Family, value, 2*c.Size)
	}
	return hex.DecodeString(value)
}

// IsHex is true if s consists of hexadecimal digits only
func IsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// DashedHex is hexadecimal display grammar with dash separated groups,
// e.g. 8-4-4-4-12 for UUID.
type DashedHex struct {
	Family string
	Groups []int
}

// Len of display string
func (d DashedHex) Len() int {
	n := len(d.Groups) - 1
	for _, g := range d.Groups {
		n += g
	}
	return n
}

func (d DashedHex) Encode(b []byte) string {
	h := hex.EncodeToString(b)

	var sb strings.Builder
	sb.Grow(d.Len())
	at := 0
	for i, g := range d.Groups {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(h[at : at+g])
		at += g
	}
	return sb.String()
}

func (d DashedHex) Decode(s string) ([]byte, error) {
	if len(s) != d.Len() {
		return nil, Invalid("%s: %q does not match display grammar", d.Family, s)
	}

	var sb strings.Builder
	sb.Grow(len(s))
	at := 0
	for i, g := range d.Groups {
		if i > 0 {
			if s[at] != '-' {
				return nil, Invalid("%s: %q does not match display grammar", d.Family, s)
			}
			at++
		}
		seg := s[at : at+g]
		if !IsHex(seg) {
			return nil, Invalid("%s: %q does not match display grammar", d.Family, s)
		}
		sb.WriteString(seg)
		at += g
	}

	return hex.DecodeString(sb.String())
}

// Crockford32 is display grammar of fixed width Crockford base-32 digits
type Crockford32 struct {
	Family string
	Width  int
	Size   int
}

func (d Crockford32) Encode(b []byte) string {
	return EncodeCrockford32(b, d.Width)
}

func (d Crockford32) Decode(s string) ([]byte, error) {
	if len(s) != d.Width {
		return nil, Invalid("%s: %q is not %d Crockford base-32 digits", d.Family, s, d.Width)
	}
	b, err := DecodeCrockford32(s, d.Size)
	if err != nil {
		return nil, Invalid("%s: %q is not a valid Crockford base-32 string", d.Family, s)
	}
	return b, nil
}

// Decimal is display grammar of unsigned integer in decimal
type Decimal struct {
	Family string
	Size   int
}

func (d Decimal) Encode(b []byte) string {
	return MagnitudeOf(b).String()
}

func (d Decimal) Decode(s string) ([]byte, error) {
	m, err := ParseMagnitude(s)
	if err != nil {
		return nil, Invalid("%s: %q is not an integer", d.Family, s)
	}
	b, err := m.Bytes(d.Size)
	if err != nil {
		return nil, Invalid("%s: integer %s is out of range [0, 2^%d)", d.Family, s, d.Size*8)
	}
	return b, nil
}
