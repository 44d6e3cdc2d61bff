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

package ulid

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/fogfish/idkit"
	"github.com/rs/zerolog"
)

const (
	timestampMax = 1<<48 - 1
	entropyHiMax = 1<<16 - 1
)

// Generator of monotonic ULIDs. Within the same millisecond the entropy of
// previous identifier is incremented, its overflow advances the timestamp.
// The instance is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	clock  idkit.Clock
	random idkit.BytesGenerator
	logger zerolog.Logger

	seeded bool
	ms     uint64
	hi     uint64
	lo     uint64
}

// Config option of generator
type Config func(*Generator)

// WithClock configures source of wall-clock time
func WithClock(clock idkit.Clock) Config {
	return func(g *Generator) { g.clock = clock }
}

// WithBytes configures source of entropy
func WithBytes(random idkit.BytesGenerator) Config {
	return func(g *Generator) { g.random = random }
}

// WithLogger configures logger
func WithLogger(logger zerolog.Logger) Config {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates generator, system clock and crypto/rand by default
func NewGenerator(opts ...Config) *Generator {
	g := &Generator{
		clock:  idkit.SystemClock,
		random: idkit.RandomBytes,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New generates ULID
func (g *Generator) New() (ULID, error) { return g.NewAt(g.clock.Now()) }

// NewAt generates ULID at given time
func (g *Generator) NewAt(t time.Time) (ULID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next(t)
}

// NextN generates batch of n ordered ULIDs, the lock is taken once
func (g *Generator) NextN(n int) ([]ULID, error) {
	if n < 0 {
		return nil, idkit.Invalid("ulid: batch size %d", n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := make([]ULID, 0, n)
	for i := 0; i < n; i++ {
		u, err := g.next(g.clock.Now())
		if err != nil {
			return nil, err
		}
		seq = append(seq, u)
	}
	return seq, nil
}

func (g *Generator) next(t time.Time) (ULID, error) {
	ms, err := idkit.EpochUnix.Timestamp(t, 48)
	if err != nil {
		return Nil, err
	}

	if !g.seeded || ms > g.ms {
		if err := g.entropy(t); err != nil {
			return Nil, err
		}
		g.ms = ms
		g.seeded = true
	} else {
		if ms < g.ms {
			g.logger.Warn().
				Uint64("ms", ms).
				Uint64("last", g.ms).
				Msg("clock moved backward, pinned to last millisecond")
		}

		g.lo++
		if g.lo == 0 {
			g.hi++
		}
		if g.hi > entropyHiMax {
			g.logger.Debug().Uint64("ms", g.ms).Msg("entropy rollover")
			if err := g.entropy(t); err != nil {
				return Nil, err
			}
			g.ms++
		}
	}

	if g.ms > timestampMax {
		return Nil, idkit.Invalid("ulid: time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(idkit.ISO8601),
			idkit.EpochUnix.Max(48).Format(idkit.ISO8601),
			idkit.EpochUnix.Name(),
		)
	}

	var u ULID
	binary.BigEndian.PutUint16(u[0:2], uint16(g.ms>>32))
	binary.BigEndian.PutUint32(u[2:6], uint32(g.ms))
	binary.BigEndian.PutUint16(u[6:8], uint16(g.hi))
	binary.BigEndian.PutUint64(u[8:16], g.lo)
	return u, nil
}

// entropy seeds 80 random bits of new millisecond, the top bit is kept zero
// to leave room for increments.
func (g *Generator) entropy(t time.Time) error {
	b, err := g.random.Bytes(10, t)
	if err != nil {
		return err
	}
	if len(b) != 10 {
		return idkit.InvalidLength("ulid: random source returned %d bytes, expected 10", len(b))
	}

	g.hi = uint64(binary.BigEndian.Uint16(b[0:2])) & (entropyHiMax >> 1)
	g.lo = binary.BigEndian.Uint64(b[2:10])
	return nil
}
