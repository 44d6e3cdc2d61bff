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
	"fmt"
	"time"

	"github.com/fogfish/idkit"
)

// Kind fixes the version of typed UUID
type Kind interface {
	Version() int
}

// Versions of RFC 9562
type (
	V1 struct{} // Gregorian time-based
	V2 struct{} // DCE Security
	V3 struct{} // name-based, MD5
	V4 struct{} // random
	V5 struct{} // name-based, SHA-1
	V6 struct{} // reordered Gregorian time-based
	V7 struct{} // Unix epoch time-based
	V8 struct{} // custom
)

func (V1) Version() int { return 1 }
func (V2) Version() int { return 2 }
func (V3) Version() int { return 3 }
func (V4) Version() int { return 4 }
func (V5) Version() int { return 5 }
func (V6) Version() int { return 6 }
func (V7) Version() int { return 7 }
func (V8) Version() int { return 8 }

// Typed is UUID of fixed version and RFC 9562 variant. The zero value is not
// a valid identifier, use constructors.
type Typed[K Kind] struct{ uuid UUID }

type (
	UUIDv1 = Typed[V1]
	UUIDv2 = Typed[V2]
	UUIDv3 = Typed[V3]
	UUIDv4 = Typed[V4]
	UUIDv5 = Typed[V5]
	UUIDv6 = Typed[V6]
	UUIDv7 = Typed[V7]
	UUIDv8 = Typed[V8]
)

func versionOf[K Kind]() int {
	var k K
	return k.Version()
}

// As checks that untyped UUID has version of K and RFC 9562 variant
func As[K Kind](u UUID) (Typed[K], error) {
	v := versionOf[K]()

	if u.IsNil() || u.IsMax() {
		return Typed[K]{}, idkit.Invalid("uuid %s is not version %d RFC 9562 UUID", u, v)
	}

	if u.Variant() != idkit.VariantRFC9562 {
		return Typed[K]{}, idkit.Invalid("uuid %s is %s variant, expected version %d RFC 9562 UUID", u, u.Variant(), v)
	}

	if x, _ := idkit.ExtractVersion(u[:]); x != v {
		return Typed[K]{}, idkit.Invalid("uuid %s is version %d, expected version %d", u, x, v)
	}

	return Typed[K]{uuid: u}, nil
}

func as[K Kind](u UUID, err error) (Typed[K], error) {
	if err != nil {
		return Typed[K]{}, fmt.Errorf("%w (expected version %d)", err, versionOf[K]())
	}
	return As[K](u)
}

// ParseAs decodes bytes (as string), hex or display string into UUID of version K
func ParseAs[K Kind](value string) (Typed[K], error) { return as[K](Parse(value)) }

// FromBytesAs decodes 16 bytes into UUID of version K
func FromBytesAs[K Kind](b []byte) (Typed[K], error) { return as[K](FromBytes(b)) }

// FromHexAs decodes 32 hex digits into UUID of version K
func FromHexAs[K Kind](s string) (Typed[K], error) { return as[K](FromHex(s)) }

// FromStringAs decodes display string into UUID of version K
func FromStringAs[K Kind](s string) (Typed[K], error) { return as[K](FromString(s)) }

// FromIntegerAs decodes integer into UUID of version K
func FromIntegerAs[K Kind](m idkit.Magnitude) (Typed[K], error) { return as[K](FromInteger(m)) }

func (t Typed[K]) UUID() UUID                       { return t.uuid }
func (t Typed[K]) Bytes() []byte                    { return t.uuid.Bytes() }
func (t Typed[K]) Hex() string                      { return t.uuid.Hex() }
func (t Typed[K]) String() string                   { return t.uuid.String() }
func (t Typed[K]) Integer() idkit.Magnitude         { return t.uuid.Integer() }
func (t Typed[K]) Version() int                     { return versionOf[K]() }
func (t Typed[K]) Variant() idkit.Variant           { return idkit.VariantRFC9562 }
func (t Typed[K]) Time() (time.Time, error)         { return t.uuid.Time() }
func (t Typed[K]) Node() (string, error)            { return t.uuid.Node() }
func (t Typed[K]) ClockSequence() (uint16, error)   { return t.uuid.ClockSequence() }
func (t Typed[K]) LocalDomain() (Domain, error)     { return t.uuid.LocalDomain() }
func (t Typed[K]) LocalIdentifier() (uint32, error) { return t.uuid.LocalIdentifier() }

// Compare with other identifier or value coercible to string
func (t Typed[K]) Compare(other any) (int, error) { return idkit.Compare(t, other) }

// Equal is true if values are equal, incomparable values are not equal
func (t Typed[K]) Equal(other any) bool { return idkit.Equal(t, other) }

func (t Typed[K]) MarshalText() ([]byte, error) { return t.uuid.MarshalText() }

func (t *Typed[K]) UnmarshalText(b []byte) error {
	x, err := ParseAs[K](string(b))
	if err != nil {
		return err
	}
	*t = x
	return nil
}

func (t Typed[K]) MarshalBinary() ([]byte, error) { return t.uuid.MarshalBinary() }

func (t *Typed[K]) UnmarshalBinary(b []byte) error {
	x, err := FromBytesAs[K](b)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// Scan implements sql.Scanner
func (t *Typed[K]) Scan(src any) error {
	b, err := scan(src)
	if err != nil {
		return err
	}
	x, err := As[K](fromCanonical(b))
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// Value implements driver.Valuer
func (t Typed[K]) Value() (driver.Value, error) { return t.uuid.Value() }
