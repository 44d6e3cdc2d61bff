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
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock is the source of wall-clock time ⟨𝒕⟩
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is time.Now
var SystemClock Clock = ClockFunc(time.Now)

// FrozenClock always returns the same time
func FrozenClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// NodeProvider is the source of spatially unique 48-bit identifier ⟨𝒍⟩ of
// ID allocator, so called node location. The address is 12 hex digits.
type NodeProvider interface {
	Address() string
}

// StaticNode is explicitly configured node address
type StaticNode string

func (n StaticNode) Address() string { return string(n) }

// ParseNode decodes node address of 12 hex digits
func ParseNode(addr string) ([6]byte, error) {
	var node [6]byte
	if len(addr) != 12 || !IsHex(addr) {
		return node, Invalid("node %q is not 12 hexadecimal digits", addr)
	}
	if _, err := hex.Decode(node[:], []byte(addr)); err != nil {
		return node, Invalid("node %q: %s", addr, err)
	}
	return node, nil
}

// RandomNode allocates node address using cryptographic random generator.
// The multicast bit is set as required for addresses that are not a NIC.
func RandomNode() NodeProvider {
	bytes := make([]byte, 6)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		panic(err.Error())
	}
	bytes[0] |= 0x01
	return StaticNode(hex.EncodeToString(bytes))
}

// EnvNodeID is environment variable used by NodeFromEnv
const EnvNodeID = "CONFIG_IDKIT_NODE_ID"

// NodeFromEnv derives node address from the string defined by environment
// variable CONFIG_IDKIT_NODE_ID
func NodeFromEnv() NodeProvider {
	h := sha256.New()
	h.Write([]byte(os.Getenv(EnvNodeID)))
	hash := h.Sum(nil)
	hash[0] |= 0x01
	return StaticNode(hex.EncodeToString(hash[:6]))
}

// SystemNode reads hardware address of network interface. It falls back to
// random node if the host has no usable interface.
func SystemNode() NodeProvider {
	node := uuid.NodeID()
	if len(node) != 6 {
		return RandomNode()
	}
	return StaticNode(hex.EncodeToString(node))
}

// SequenceSource produces clock sequence values, monotonic per key within a
// clock tick.
type SequenceSource interface {
	Next(key string, t time.Time) uint64
}

// SequenceFunc adapts function to SequenceSource
type SequenceFunc func(key string, t time.Time) uint64

func (f SequenceFunc) Next(key string, t time.Time) uint64 { return f(key, t) }

// FrozenSequence always returns the same value
func FrozenSequence(n uint64) SequenceSource {
	return SequenceFunc(func(string, time.Time) uint64 { return n })
}

// StatefulSequence counts values per key. The counter restarts from the
// initial value when the key observes a later tick, it keeps incrementing
// while the tick is the same or earlier than the latest seen one.
type StatefulSequence struct {
	mu      sync.Mutex
	initial uint64
	state   map[string]*sequenceState
}

type sequenceState struct {
	tick  time.Time
	value uint64
}

// NewStatefulSequence creates sequence restarting from initial value
func NewStatefulSequence(initial uint64) *StatefulSequence {
	return &StatefulSequence{
		initial: initial,
		state:   make(map[string]*sequenceState),
	}
}

func (s *StatefulSequence) Next(key string, t time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, has := s.state[key]
	if !has {
		s.state[key] = &sequenceState{tick: t, value: s.initial}
		return s.initial
	}

	if t.After(st.tick) {
		st.tick = t
		st.value = s.initial
		return st.value
	}

	st.value++
	return st.value
}

// BytesGenerator is the source of random bytes
type BytesGenerator interface {
	Bytes(n int, t time.Time) ([]byte, error)
}

// BytesFunc adapts function to BytesGenerator
type BytesFunc func(n int, t time.Time) ([]byte, error)

func (f BytesFunc) Bytes(n int, t time.Time) ([]byte, error) { return f(n, t) }

// RandomBytes reads cryptographic random generator
var RandomBytes BytesGenerator = BytesFunc(
	func(n int, _ time.Time) ([]byte, error) {
		b := make([]byte, n)
		if _, err := io.ReadFull(rand.Reader, b); err != nil {
			return nil, err
		}
		return b, nil
	},
)

// FixedBytes repeats the pattern, it is only useful for testing
func FixedBytes(pattern ...byte) BytesGenerator {
	return BytesFunc(func(n int, _ time.Time) ([]byte, error) {
		b := make([]byte, n)
		if len(pattern) == 0 {
			return b, nil
		}
		for i := range b {
			b[i] = pattern[i%len(pattern)]
		}
		return b, nil
	})
}
