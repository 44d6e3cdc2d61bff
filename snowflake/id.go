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

package snowflake

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/fogfish/idkit"
)

// GenericID is snowflake of any layout. The zero value uses LayoutGeneric.
type GenericID struct {
	b      [8]byte
	layout *Layout
}

func codecOf(l *Layout) idkit.Codec {
	return idkit.Codec{
		Family:  "snowflake " + l.name,
		Size:    8,
		Lengths: idkit.Lengths{Bytes: 8, Hex: 16},
		Display: idkit.Decimal{Family: "snowflake " + l.name, Size: 8},
	}
}

func (l *Layout) id(b []byte) GenericID {
	x := GenericID{layout: l}
	copy(x.b[:], b)
	return x
}

// Parse decodes bytes (as string), hex or decimal string. Bytes and hex are
// derived from the length of value, anything else is decimal.
func (l *Layout) Parse(value string) (GenericID, error) {
	codec := codecOf(l)
	f := codec.Lengths.FormatOf(len(value))
	if f == idkit.FormatUnknown {
		f = idkit.FormatString
	}

	b, err := codec.Decode(f, value)
	if err != nil {
		return GenericID{}, err
	}
	return l.id(b), nil
}

// FromBytes decodes 8 bytes
func (l *Layout) FromBytes(b []byte) (GenericID, error) {
	if len(b) != 8 {
		return GenericID{}, idkit.InvalidLength("snowflake %s: expected 8 bytes, got %d", l.name, len(b))
	}
	return l.id(b), nil
}

// FromHex decodes 16 hex digits
func (l *Layout) FromHex(s string) (GenericID, error) {
	b, err := codecOf(l).Decode(idkit.FormatHex, s)
	if err != nil {
		return GenericID{}, err
	}
	return l.id(b), nil
}

// FromString decodes unsigned decimal
func (l *Layout) FromString(s string) (GenericID, error) {
	b, err := codecOf(l).Decode(idkit.FormatString, s)
	if err != nil {
		return GenericID{}, err
	}
	return l.id(b), nil
}

// FromInteger decodes unsigned 64-bit integer
func (l *Layout) FromInteger(m idkit.Magnitude) (GenericID, error) {
	b, err := codecOf(l).DecodeInteger(m)
	if err != nil {
		return GenericID{}, err
	}
	return l.id(b), nil
}

// FromUint64 builds snowflake of the value
func (l *Layout) FromUint64(n uint64) GenericID {
	x := GenericID{layout: l}
	binary.BigEndian.PutUint64(x.b[:], n)
	return x
}

// Convert value between representations
func (l *Layout) Convert(value string, from, to idkit.Format) (string, error) {
	return codecOf(l).Convert(value, from, to)
}

func (id GenericID) Layout() *Layout {
	if id.layout == nil {
		return LayoutGeneric
	}
	return id.layout
}

func (id GenericID) Bytes() []byte            { return append([]byte(nil), id.b[:]...) }
func (id GenericID) Hex() string              { return hex.EncodeToString(id.b[:]) }
func (id GenericID) String() string           { return id.Integer().String() }
func (id GenericID) Integer() idkit.Magnitude { return idkit.Unsigned(id.Uint64()) }
func (id GenericID) Uint64() uint64           { return binary.BigEndian.Uint64(id.b[:]) }

// Timestamp is milliseconds since layout's epoch
func (id GenericID) Timestamp() uint64 { return id.Layout().time.Get(id.Uint64()) }

// Time is wall-clock time of timestamp
func (id GenericID) Time() time.Time { return id.Layout().epoch.At(id.Timestamp()) }

// Sequence is value of sequence field
func (id GenericID) Sequence() uint64 { return id.Layout().sequence.Get(id.Uint64()) }

// Field value by name, ErrUnsupportedOperation if layout has no such field
func (id GenericID) Field(name string) (uint64, error) {
	f, has := id.Layout().Field(name)
	if !has {
		return 0, idkit.Unsupported("snowflake %s %s: no field %q", id.Layout().name, id, name)
	}
	return f.Get(id.Uint64()), nil
}

// Compare with other identifier or value. Integers and decimal strings are
// compared numerically.
func (id GenericID) Compare(other any) (int, error) {
	if n, ok := numeric(other); ok {
		return id.Integer().Cmp(n), nil
	}
	return idkit.Compare(id, other)
}

// Equal is true if values are equal, incomparable values are not equal
func (id GenericID) Equal(other any) bool {
	c, err := id.Compare(other)
	return err == nil && c == 0
}

func numeric(x any) (idkit.Magnitude, bool) {
	switch v := x.(type) {
	case int:
		return idkit.Native(int64(v)), true
	case int64:
		return idkit.Native(v), true
	case uint64:
		return idkit.Unsigned(v), true
	case idkit.Magnitude:
		return v, true
	case string:
		m, err := idkit.ParseMagnitude(v)
		return m, err == nil
	default:
		return idkit.Magnitude{}, false
	}
}

func (id GenericID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *GenericID) UnmarshalText(b []byte) error {
	x, err := id.Layout().FromString(string(b))
	if err != nil {
		return err
	}
	*id = x
	return nil
}

// UnmarshalJSON accepts decimal string or number
func (id *GenericID) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	return id.UnmarshalText([]byte(s))
}

func (id GenericID) MarshalBinary() ([]byte, error) { return id.Bytes(), nil }

func (id *GenericID) UnmarshalBinary(b []byte) error {
	x, err := id.Layout().FromBytes(b)
	if err != nil {
		return err
	}
	*id = x
	return nil
}

// Scan implements sql.Scanner, BIGINT columns are read as 64 bits
func (id *GenericID) Scan(src any) error {
	l := id.Layout()
	switch v := src.(type) {
	case nil:
		*id = l.FromUint64(0)
	case int64:
		*id = l.FromUint64(uint64(v))
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	default:
		return idkit.Invalid("snowflake %s: cannot scan %T", l.name, src)
	}
	return nil
}

// Value implements driver.Valuer, the 64 bits are written as BIGINT
func (id GenericID) Value() (driver.Value, error) { return int64(id.Uint64()), nil }

func unquote(b []byte) (string, error) {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], nil
	}
	if len(s) == 0 {
		return "", idkit.Invalid("snowflake: empty JSON value")
	}
	return s, nil
}

// Flavor fixes layout of typed snowflake
type Flavor interface {
	Layout() *Layout
}

// Well-known flavors
type (
	Twitter   struct{}
	Discord   struct{}
	Instagram struct{}
	// Mastodon identifiers are well-ordered within 1 ms only, the low 16 bits
	// are keyed hash of the table plus sequence.
	Mastodon struct{}
)

func (Twitter) Layout() *Layout   { return LayoutTwitter }
func (Discord) Layout() *Layout   { return LayoutDiscord }
func (Instagram) Layout() *Layout { return LayoutInstagram }
func (Mastodon) Layout() *Layout  { return LayoutMastodon }

func layoutOf[F Flavor]() *Layout {
	var f F
	return f.Layout()
}

// ID is snowflake of fixed flavor
type ID[F Flavor] struct{ b [8]byte }

type (
	TwitterID   = ID[Twitter]
	DiscordID   = ID[Discord]
	InstagramID = ID[Instagram]
	MastodonID  = ID[Mastodon]
)

func typed[F Flavor](x GenericID, err error) (ID[F], error) {
	if err != nil {
		return ID[F]{}, err
	}
	return ID[F]{b: x.b}, nil
}

// Parse decodes bytes (as string), hex or decimal string into snowflake of F
func Parse[F Flavor](value string) (ID[F], error) { return typed[F](layoutOf[F]().Parse(value)) }

// FromBytes decodes 8 bytes into snowflake of F
func FromBytes[F Flavor](b []byte) (ID[F], error) { return typed[F](layoutOf[F]().FromBytes(b)) }

// FromHex decodes 16 hex digits into snowflake of F
func FromHex[F Flavor](s string) (ID[F], error) { return typed[F](layoutOf[F]().FromHex(s)) }

// FromString decodes decimal into snowflake of F
func FromString[F Flavor](s string) (ID[F], error) { return typed[F](layoutOf[F]().FromString(s)) }

// FromInteger decodes integer into snowflake of F
func FromInteger[F Flavor](m idkit.Magnitude) (ID[F], error) {
	return typed[F](layoutOf[F]().FromInteger(m))
}

// FromUint64 builds snowflake of F
func FromUint64[F Flavor](n uint64) ID[F] {
	return ID[F]{b: layoutOf[F]().FromUint64(n).b}
}

// Must panics on error
func Must[T any](x T, err error) T {
	if err != nil {
		panic(err)
	}
	return x
}

// Generic snowflake of the same value
func (id ID[F]) Generic() GenericID { return GenericID{b: id.b, layout: layoutOf[F]()} }

func (id ID[F]) Layout() *Layout          { return layoutOf[F]() }
func (id ID[F]) Bytes() []byte            { return id.Generic().Bytes() }
func (id ID[F]) Hex() string              { return id.Generic().Hex() }
func (id ID[F]) String() string           { return id.Generic().String() }
func (id ID[F]) Integer() idkit.Magnitude { return id.Generic().Integer() }
func (id ID[F]) Uint64() uint64           { return id.Generic().Uint64() }
func (id ID[F]) Timestamp() uint64        { return id.Generic().Timestamp() }
func (id ID[F]) Time() time.Time          { return id.Generic().Time() }
func (id ID[F]) Sequence() uint64         { return id.Generic().Sequence() }

// Field value by name, see GenericID.Field
func (id ID[F]) Field(name string) (uint64, error) { return id.Generic().Field(name) }

// Compare with other identifier or value, see GenericID.Compare
func (id ID[F]) Compare(other any) (int, error) { return id.Generic().Compare(other) }

// Equal is true if values are equal, incomparable values are not equal
func (id ID[F]) Equal(other any) bool { return id.Generic().Equal(other) }

func (id ID[F]) MarshalText() ([]byte, error) { return id.Generic().MarshalText() }

func (id *ID[F]) UnmarshalText(b []byte) error {
	x, err := FromString[F](string(b))
	if err != nil {
		return err
	}
	*id = x
	return nil
}

// UnmarshalJSON accepts decimal string or number
func (id *ID[F]) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	return id.UnmarshalText([]byte(s))
}

func (id ID[F]) MarshalBinary() ([]byte, error) { return id.Generic().MarshalBinary() }

func (id *ID[F]) UnmarshalBinary(b []byte) error {
	x, err := FromBytes[F](b)
	if err != nil {
		return err
	}
	*id = x
	return nil
}

// Scan implements sql.Scanner, see GenericID.Scan
func (id *ID[F]) Scan(src any) error {
	x := id.Generic()
	if err := x.Scan(src); err != nil {
		return err
	}
	id.b = x.b
	return nil
}

// Value implements driver.Valuer, see GenericID.Value
func (id ID[F]) Value() (driver.Value, error) { return id.Generic().Value() }

// Snowflake is the surface shared by GenericID and ID[F]
type Snowflake interface {
	idkit.Identifier
	Layout() *Layout
	Hex() string
	Integer() idkit.Magnitude
	Uint64() uint64
	Time() time.Time
	Sequence() uint64
	Field(name string) (uint64, error)
}

var (
	_ Snowflake = GenericID{}
	_ Snowflake = ID[Discord]{}
)
