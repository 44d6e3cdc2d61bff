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

package uuid

import (
	"database/sql/driver"
	"time"

	"github.com/fogfish/idkit"
)

// GUID is UUID in Microsoft byte order. The first three fields (time_low,
// time_mid, time_hi_and_version) are little-endian in its bytes. Hex, string
// and integer representations follow the display order.
//
// GUID is mixed endian, it is compared by display string only.
type GUID struct{ b [16]byte }

// swap converts between RFC 9562 and Microsoft byte order, the function is
// its own inverse.
func swap(b []byte) [16]byte {
	var x [16]byte
	copy(x[:], b)
	x[0], x[1], x[2], x[3] = x[3], x[2], x[1], x[0]
	x[4], x[5] = x[5], x[4]
	x[6], x[7] = x[7], x[6]
	return x
}

// GUIDOf converts UUID to Microsoft byte order
func GUIDOf(u UUID) GUID { return GUID{b: swap(u[:])} }

// GUIDFromBytes decodes 16 bytes in Microsoft byte order
func GUIDFromBytes(b []byte) (GUID, error) {
	if len(b) != 16 {
		return GUID{}, idkit.InvalidLength("guid: expected 16 bytes, got %d", len(b))
	}
	var g GUID
	copy(g.b[:], b)
	return g, nil
}

// ParseGUID decodes bytes (as string, Microsoft order), hex or display string
func ParseGUID(value string) (GUID, error) {
	if len(value) == 16 {
		return GUIDFromBytes([]byte(value))
	}
	u, err := Parse(value)
	if err != nil {
		return GUID{}, err
	}
	return GUIDOf(u), nil
}

// GUIDFromHex decodes 32 hex digits in display order
func GUIDFromHex(s string) (GUID, error) {
	u, err := FromHex(s)
	if err != nil {
		return GUID{}, err
	}
	return GUIDOf(u), nil
}

// GUIDFromString decodes display string 8-4-4-4-12
func GUIDFromString(s string) (GUID, error) {
	u, err := FromString(s)
	if err != nil {
		return GUID{}, err
	}
	return GUIDOf(u), nil
}

// GUIDFromInteger decodes integer of display order
func GUIDFromInteger(m idkit.Magnitude) (GUID, error) {
	u, err := FromInteger(m)
	if err != nil {
		return GUID{}, err
	}
	return GUIDOf(u), nil
}

// UUID converts to RFC 9562 byte order
func (g GUID) UUID() UUID { return UUID(swap(g.b[:])) }

func (g GUID) Bytes() []byte            { return append([]byte(nil), g.b[:]...) }
func (g GUID) Hex() string              { return g.UUID().Hex() }
func (g GUID) String() string           { return g.UUID().String() }
func (g GUID) Integer() idkit.Magnitude { return g.UUID().Integer() }
func (g GUID) Variant() idkit.Variant   { return g.UUID().Variant() }
func (g GUID) MixedEndian() bool        { return true }

// Version of GUID, see UUID.Version
func (g GUID) Version() (int, error) { return g.UUID().Version() }

// Time of time-based GUID, see UUID.Time
func (g GUID) Time() (time.Time, error) { return g.UUID().Time() }

// Compare with other identifier or value coercible to string
func (g GUID) Compare(other any) (int, error) { return idkit.Compare(g, other) }

// Equal is true if values are equal, incomparable values are not equal
func (g GUID) Equal(other any) bool { return idkit.Equal(g, other) }

func (g GUID) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GUID) UnmarshalText(b []byte) error {
	x, err := ParseGUID(string(b))
	if err != nil {
		return err
	}
	*g = x
	return nil
}

func (g GUID) MarshalBinary() ([]byte, error) { return g.Bytes(), nil }

func (g *GUID) UnmarshalBinary(b []byte) error {
	x, err := GUIDFromBytes(b)
	if err != nil {
		return err
	}
	*g = x
	return nil
}

// Scan implements sql.Scanner, binary values are Microsoft byte order
func (g *GUID) Scan(src any) error {
	if b, ok := src.([]byte); ok && len(b) == 16 {
		copy(g.b[:], b)
		return nil
	}

	b, err := scan(src)
	if err != nil {
		return err
	}
	*g = GUIDOf(fromCanonical(b))
	return nil
}

// Value implements driver.Valuer
func (g GUID) Value() (driver.Value, error) { return g.String(), nil }
