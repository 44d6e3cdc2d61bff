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
	"github.com/fogfish/idkit"
)

// Identifier is the surface shared by UUID, GUID and typed UUIDs
type Identifier interface {
	idkit.Identifier
	Hex() string
	Integer() idkit.Magnitude
	Variant() idkit.Variant
}

// Resolve classifies 16 bytes. It returns Nil or Max as UUID, Typed[Vn] for
// RFC 9562 values of versions 1 to 8, GUID for Microsoft variant (bytes are
// taken in Microsoft order) and untyped UUID for anything else.
func Resolve(b []byte) (Identifier, error) {
	u, err := FromBytes(b)
	if err != nil {
		return nil, err
	}

	if u.IsNil() || u.IsMax() {
		return u, nil
	}

	switch u.Variant() {
	case idkit.VariantMicrosoft:
		return GUID{b: u}, nil
	case idkit.VariantRFC9562:
	default:
		return u, nil
	}

	v, err := u.Version()
	if err != nil {
		return u, nil
	}

	switch v {
	case 1:
		return Typed[V1]{uuid: u}, nil
	case 2:
		return Typed[V2]{uuid: u}, nil
	case 3:
		return Typed[V3]{uuid: u}, nil
	case 4:
		return Typed[V4]{uuid: u}, nil
	case 5:
		return Typed[V5]{uuid: u}, nil
	case 6:
		return Typed[V6]{uuid: u}, nil
	case 7:
		return Typed[V7]{uuid: u}, nil
	default:
		return Typed[V8]{uuid: u}, nil
	}
}
