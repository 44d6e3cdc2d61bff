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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fogfish/idkit"
	google "github.com/google/uuid"
)

// UUID is untyped 128-bit identifier in RFC 9562 byte order. It holds any
// value: Nil, Max, any version or nonstandard bytes.
type UUID [16]byte

var codec = idkit.Codec{
	Family:  "uuid",
	Size:    16,
	Lengths: idkit.Lengths{Bytes: 16, Hex: 32, String: 36},
	Display: idkit.DashedHex{Family: "uuid", Groups: []int{8, 4, 4, 4, 12}},
}

// Special values, outside of version/variant classification
var (
	Nil = UUID{}
	Max = UUID{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
)

func fromCanonical(b []byte) UUID {
	var u UUID
	copy(u[:], b)
	return u
}

// Parse decodes bytes (as string), hex or display string. The format is
// derived from the length of value.
func Parse(value string) (UUID, error) {
	b, err := codec.Parse(value)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromBytes decodes 16 bytes
func FromBytes(b []byte) (UUID, error) {
	if len(b) != 16 {
		return Nil, idkit.InvalidLength("uuid: expected 16 bytes, got %d", len(b))
	}
	return fromCanonical(b), nil
}

// FromHex decodes 32 hex digits
func FromHex(s string) (UUID, error) {
	b, err := codec.Decode(idkit.FormatHex, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromString decodes display string 8-4-4-4-12, case insensitive
func FromString(s string) (UUID, error) {
	b, err := codec.Decode(idkit.FormatString, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// FromInteger decodes unsigned 128-bit integer
func FromInteger(m idkit.Magnitude) (UUID, error) {
	b, err := codec.DecodeInteger(m)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// ParseInteger decodes unsigned 128-bit integer in decimal
func ParseInteger(s string) (UUID, error) {
	b, err := codec.Decode(idkit.FormatInteger, s)
	if err != nil {
		return Nil, err
	}
	return fromCanonical(b), nil
}

// Must panics on error
func Must[T any](x T, err error) T {
	if err != nil {
		panic(err)
	}
	return x
}

// Convert value between representations
func Convert(value string, from, to idkit.Format) (string, error) {
	return codec.Convert(value, from, to)
}

// FromGoogle converts github.com/google/uuid value
func FromGoogle(g google.UUID) UUID { return UUID(g) }

// Google converts to github.com/google/uuid value
func (u UUID) Google() google.UUID { return google.UUID(u) }

func (u UUID) Bytes() []byte            { return append([]byte(nil), u[:]...) }
func (u UUID) Hex() string              { return hex.EncodeToString(u[:]) }
func (u UUID) String() string           { return codec.Display.Encode(u[:]) }
func (u UUID) Integer() idkit.Magnitude { return idkit.MagnitudeOf(u[:]) }
func (u UUID) IsNil() bool              { return u == Nil }
func (u UUID) IsMax() bool              { return u == Max }

// Variant of value
func (u UUID) Variant() idkit.Variant {
	v, _ := idkit.ExtractVariant(u[:])
	return v
}

// Version of RFC 9562 value. Nil, Max and values of other variants or
// unknown versions fail with ErrCannotDetermineVersion.
func (u UUID) Version() (int, error) {
	if u.IsNil() || u.IsMax() {
		return 0, fmt.Errorf("%w: uuid %s is special value", idkit.ErrCannotDetermineVersion, u)
	}
	if u.Variant() != idkit.VariantRFC9562 {
		return 0, fmt.Errorf("%w: uuid %s is %s variant", idkit.ErrCannotDetermineVersion, u, u.Variant())
	}

	v, _ := idkit.ExtractVersion(u[:])
	if v < 1 || v > 8 {
		return 0, fmt.Errorf("%w: uuid %s has unknown version %d", idkit.ErrCannotDetermineVersion, u, v)
	}
	return v, nil
}

func (u UUID) versionOf(accessor string, versions ...int) (int, error) {
	v, err := u.Version()
	if err != nil {
		return 0, idkit.Unsupported("uuid %s: %s is not available: %s", u, accessor, err)
	}
	for _, x := range versions {
		if v == x {
			return v, nil
		}
	}
	return 0, idkit.Unsupported("uuid %s: %s is not available for version %d", u, accessor, v)
}

// Time of time-based value (versions 1, 2, 6 and 7).
//
// Version 2 replaces 32 low bits of timestamp with local identifier, its
// time is accurate to about ±429 seconds only.
func (u UUID) Time() (time.Time, error) {
	v, err := u.versionOf("time", 1, 2, 6, 7)
	if err != nil {
		return time.Time{}, err
	}

	switch v {
	case 7:
		ms := uint64(u[0])<<40 | uint64(u[1])<<32 | uint64(u[2])<<24 |
			uint64(u[3])<<16 | uint64(u[4])<<8 | uint64(u[5])
		return idkit.EpochUnix.At(ms), nil
	case 6:
		return idkit.GregorianTime(ticksV6(u)), nil
	case 2:
		return idkit.GregorianTime(ticksV1(u) &^ 0xffffffff), nil
	default:
		return idkit.GregorianTime(ticksV1(u)), nil
	}
}

// Node of time-based value (versions 1, 2 and 6), 12 hex digits
func (u UUID) Node() (string, error) {
	if _, err := u.versionOf("node", 1, 2, 6); err != nil {
		return "", err
	}
	return hex.EncodeToString(u[10:16]), nil
}

// ClockSequence of time-based value (versions 1, 2 and 6). Version 2 has
// 6 bits clock sequence, others 14 bits.
func (u UUID) ClockSequence() (uint16, error) {
	v, err := u.versionOf("clock sequence", 1, 2, 6)
	if err != nil {
		return 0, err
	}
	if v == 2 {
		return uint16(u[8] & 0x3f), nil
	}
	return binary.BigEndian.Uint16(u[8:10]) & 0x3fff, nil
}

// LocalDomain of DCE Security value (version 2)
func (u UUID) LocalDomain() (Domain, error) {
	if _, err := u.versionOf("local domain", 2); err != nil {
		return 0, err
	}
	return Domain(u[9]), nil
}

// LocalIdentifier of DCE Security value (version 2)
func (u UUID) LocalIdentifier() (uint32, error) {
	if _, err := u.versionOf("local identifier", 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(u[0:4]), nil
}

// Compare with other identifier or value coercible to string
func (u UUID) Compare(other any) (int, error) { return idkit.Compare(u, other) }

// Equal is true if values are equal, incomparable values are not equal
func (u UUID) Equal(other any) bool { return idkit.Equal(u, other) }

func (u UUID) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *UUID) UnmarshalText(b []byte) error {
	x, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = x
	return nil
}

func (u UUID) MarshalBinary() ([]byte, error) { return u.Bytes(), nil }

func (u *UUID) UnmarshalBinary(b []byte) error {
	x, err := FromBytes(b)
	if err != nil {
		return err
	}
	*u = x
	return nil
}

// Scan implements sql.Scanner
func (u *UUID) Scan(src any) error {
	b, err := scan(src)
	if err != nil {
		return err
	}
	*u = fromCanonical(b)
	return nil
}

// Value implements driver.Valuer
func (u UUID) Value() (driver.Value, error) { return u.String(), nil }

func scan(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return Nil[:], nil
	case string:
		return codec.Parse(v)
	case []byte:
		if len(v) == 16 {
			return v, nil
		}
		return codec.Parse(string(v))
	default:
		return nil, idkit.Invalid("uuid: cannot scan %T", src)
	}
}

//
// bit layouts of time-based versions
//
//	v1  |  time_low 32  | time_mid 16 | ver 4 time_hi 12 | var seq | node 48 |
//	v6  |  time_high 32 | time_mid 16 | ver 4 time_low 12 | var seq | node 48 |
//

func ticksV1(u UUID) uint64 {
	low := uint64(binary.BigEndian.Uint32(u[0:4]))
	mid := uint64(binary.BigEndian.Uint16(u[4:6]))
	hi := uint64(binary.BigEndian.Uint16(u[6:8]) & 0x0fff)
	return hi<<48 | mid<<32 | low
}

func ticksV6(u UUID) uint64 {
	high := uint64(binary.BigEndian.Uint32(u[0:4]))
	mid := uint64(binary.BigEndian.Uint16(u[4:6]))
	low := uint64(binary.BigEndian.Uint16(u[6:8]) & 0x0fff)
	return high<<28 | mid<<12 | low
}

func putTicksV1(u *UUID, ticks uint64) {
	binary.BigEndian.PutUint32(u[0:4], uint32(ticks))
	binary.BigEndian.PutUint16(u[4:6], uint16(ticks>>32))
	binary.BigEndian.PutUint16(u[6:8], uint16(ticks>>48)&0x0fff)
}

func putTicksV6(u *UUID, ticks uint64) {
	binary.BigEndian.PutUint32(u[0:4], uint32(ticks>>28))
	binary.BigEndian.PutUint16(u[4:6], uint16(ticks>>12))
	binary.BigEndian.PutUint16(u[6:8], uint16(ticks)&0x0fff)
}

// withVersion applies version and RFC 9562 variant
func withVersion(u UUID, version int) UUID {
	b, _ := idkit.ApplyVersionVariant(u[:], version, idkit.VariantRFC9562)
	return fromCanonical(b)
}
