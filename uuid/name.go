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

// Well-known namespaces of name-based UUIDs
var (
	NamespaceDNS  = Must(FromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	NamespaceURL  = Must(FromString("6ba7b811-9dad-11d1-80b4-00c04fd430c8"))
	NamespaceOID  = Must(FromString("6ba7b812-9dad-11d1-80b4-00c04fd430c8"))
	NamespaceX500 = Must(FromString("6ba7b814-9dad-11d1-80b4-00c04fd430c8"))
)

// NewV3 builds name-based UUID using MD5
func NewV3(ns UUID, name string) UUIDv3 {
	return nameBased[V3](idkit.MD5, ns, name)
}

// NewV5 builds name-based UUID using SHA-1
func NewV5(ns UUID, name string) UUIDv5 {
	return nameBased[V5](idkit.SHA1, ns, name)
}

// NewV8 builds UUID from custom bits, version and variant bits are replaced
func NewV8(custom [16]byte) UUIDv8 {
	return Typed[V8]{uuid: withVersion(custom, 8)}
}

func nameBased[K Kind](hash idkit.HashFunction, ns UUID, name string) Typed[K] {
	data := make([]byte, 0, 16+len(name))
	data = append(data, ns[:]...)
	data = append(data, name...)

	var u UUID
	copy(u[:], hash.Hash(data))
	return Typed[K]{uuid: withVersion(u, versionOf[K]())}
}
