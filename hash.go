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
	"crypto/md5"
	"crypto/sha1"
	"os"
)

// HashFunction is an opaque digest of data
type HashFunction interface {
	Hash(data []byte) []byte
}

// HashFunc adapts function to HashFunction
type HashFunc func(data []byte) []byte

func (f HashFunc) Hash(data []byte) []byte { return f(data) }

// Digests used by name based identifiers
var (
	MD5 HashFunction = HashFunc(func(data []byte) []byte {
		sum := md5.Sum(data)
		return sum[:]
	})

	SHA1 HashFunction = HashFunc(func(data []byte) []byte {
		sum := sha1.Sum(data)
		return sum[:]
	})
)

// DCE is the source of local identifiers of DCE Security identifiers
type DCE interface {
	UID() (uint32, error)
	GID() (uint32, error)
}

// SystemDCE reads user and group of the current process
var SystemDCE DCE = systemDCE{}

type systemDCE struct{}

func (systemDCE) UID() (uint32, error) {
	id := os.Getuid()
	if id < 0 {
		return 0, Unsupported("user id is not available on this platform")
	}
	return uint32(id), nil
}

func (systemDCE) GID() (uint32, error) {
	id := os.Getgid()
	if id < 0 {
		return 0, Unsupported("group id is not available on this platform")
	}
	return uint32(id), nil
}

// StaticDCE is explicitly configured user and group
type StaticDCE struct {
	User  uint32
	Group uint32
}

func (s StaticDCE) UID() (uint32, error) { return s.User, nil }
func (s StaticDCE) GID() (uint32, error) { return s.Group, nil }
