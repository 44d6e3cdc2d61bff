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

/*
Package ulid implements Universally Unique Lexicographically Sortable
Identifier. ULID is 48 bits of milliseconds since Unix epoch followed by
80 bits of entropy, displayed as 26 Crockford base-32 digits.

	|--- timestamp 48 ---|--- entropy 80 ---|
*/
package ulid

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/fogfish/idkit"
	"github.com/fogfish/idkit/uuid"
	oklog "github.com/oklog/ulid/v2"
)

// ULID is 128-bit identifier, canonical bytes are big-endian
type ULID [16]byte

var codec = idkit.Codec{
	Family:  "ulid",
	Size:    16,
	Lengths: idkit.Lengths{Bytes: 16, Hex: 32, String: 26},
	Display: idkit.Crockford32{Family: "ulid", Width: 26, Size: 16},
}

var (
	Nil = ULID{}
	Max = ULID{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
)

func fromCanonical(b []byte) ULID {
	var u ULID
	copy(u[:], b)
	return u
}

// Parse decodes bytes (as string), hex or Crockford base-32 string. The
// format is derived from the length of value.
func Parse(value string) (ULID, error) {
	if codec.Lengths.FormatOf(len(value)) == idkit.FormatString {
		return FromString(value)
	}

	b, err := codec.Parse(value)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromBytes decodes 16 bytes
func FromBytes(b []byte) (ULID, error) {
	if len(b) != 16 {
		return Nil, idkit.InvalidLength("ulid: expected 16 bytes, got %d", len(b))
	}
	return fromCanonical(b), nil
}

// FromHex decodes 32 hex digits
func FromHex(s string) (ULID, error) {
	b, err := codec.Decode(idkit.FormatHex, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromString decodes 26 Crockford base-32 digits, case insensitive. The
// first digit is within 0..7 (O is read as 0), otherwise the value overflows
// 128 bits.
func FromString(s string) (ULID, error) {
	if len(s) == 26 && s[0] != 'O' && s[0] != 'o' && (s[0] < '0' || s[0] > '7') {
		return Nil, idkit.Invalid("ulid: %q overflows 128 bits, first character must be within 0..7", s)
	}

	b, err := codec.Decode(idkit.FormatString, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromInteger decodes unsigned 128-bit integer
func FromInteger(m idkit.Magnitude) (ULID, error) {
	b, err := codec.DecodeInteger(m)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// ParseInteger decodes unsigned 128-bit integer in decimal
func ParseInteger(s string) (ULID, error) {
	b, err := codec.Decode(idkit.FormatInteger, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// Must panics on error
func Must(u ULID, err error) ULID {
	if err != nil {
		panic(err)
	}
	return u
}

// Convert value between representations
func Convert(value string, from, to idkit.Format) (string, error) {
	if from == idkit.FormatString {
		u, err := FromString(value)
		if err != nil {
			return "", err
		}
		return codec.Encode(to, u[:])
	}
	return codec.Convert(value, from, to)
}

// FromUUID reinterprets UUID bytes as ULID
func FromUUID(u uuid.UUID) ULID { return ULID(u) }

// UUID reinterprets ULID bytes as untyped UUID
func (u ULID) UUID() uuid.UUID { return uuid.UUID(u) }

// FromOklog converts github.com/oklog/ulid/v2 value
func FromOklog(x oklog.ULID) ULID { return ULID(x) }

// Oklog converts to github.com/oklog/ulid/v2 value
func (u ULID) Oklog() oklog.ULID { return oklog.ULID(u) }

func (u ULID) Bytes() []byte            { return append([]byte(nil), u[:]...) }
func (u ULID) Hex() string              { return hex.EncodeToString(u[:]) }
func (u ULID) String() string           { return codec.Display.Encode(u[:]) }
func (u ULID) Integer() idkit.Magnitude { return idkit.MagnitudeOf(u[:]) }
func (u ULID) IsNil() bool              { return u == Nil }
func (u ULID) IsMax() bool              { return u == Max }

// Timestamp is milliseconds since Unix epoch
func (u ULID) Timestamp() uint64 {
	return uint64(binary.BigEndian.Uint16(u[0:2]))<<32 | uint64(binary.BigEndian.Uint32(u[2:6]))
}

// Time is wall-clock time of timestamp
func (u ULID) Time() time.Time { return idkit.EpochUnix.At(u.Timestamp()) }

// Entropy is 80 bits of random component
func (u ULID) Entropy() []byte { return append([]byte(nil), u[6:]...) }

// Compare with other identifier or value coercible to string
func (u ULID) Compare(other any) (int, error) { return idkit.Compare(u, other) }

// Equal is true if values are equal, incomparable values are not equal
func (u ULID) Equal(other any) bool { return idkit.Equal(u, other) }

func (u ULID) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *ULID) UnmarshalText(b []byte) error {
	x, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = x
	return nil
}

func (u ULID) MarshalBinary() ([]byte, error) { return u.Bytes(), nil }

func (u *ULID) UnmarshalBinary(b []byte) error {
	x, err := FromBytes(b)
	if err != nil {
		return err
	}
	*u = x
	return nil
}

// Scan implements sql.Scanner
func (u *ULID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*u = Nil
		return nil
	case string:
		return u.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 16 {
			*u = fromCanonical(v)
			return nil
		}
		return u.UnmarshalText(v)
	default:
		return idkit.Invalid("ulid: cannot scan %T", src)
	}
}

// Value implements driver.Valuer
func (u ULID) Value() (driver.Value, error) { return u.String(), nil }
