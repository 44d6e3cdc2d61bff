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
	"encoding/binary"
	"sync"
	"time"

	"github.com/fogfish/idkit"
	"github.com/rs/zerolog"
)

const (
	gregorianMax = 1<<60 - 1
	v7Max        = 1<<48 - 1
	randBMax     = 1<<62 - 1
	randAMax     = 1<<12 - 1
)

// Generator of UUIDs. It owns clock sequence state of time-based versions,
// the instance is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	clock  idkit.Clock
	node   idkit.NodeProvider
	seq    idkit.SequenceSource
	random idkit.BytesGenerator
	md5    idkit.HashFunction
	sha1   idkit.HashFunction
	dce    idkit.DCE
	logger zerolog.Logger

	// clock sequence of versions 1 and 6
	gregorian *idkit.Sequencer
	// clock sequence of version 2
	security *idkit.Sequencer

	// last millisecond and random bits of version 7
	seeded bool
	ms     uint64
	randA  uint64
	randB  uint64
}

// Config option of generator
type Config func(*Generator)

// WithClock configures source of wall-clock time
func WithClock(clock idkit.Clock) Config {
	return func(g *Generator) { g.clock = clock }
}

// WithNode configures ⟨𝒍⟩ node of versions 1, 2 and 6
func WithNode(node idkit.NodeProvider) Config {
	return func(g *Generator) { g.node = node }
}

// WithNodeRandom configures random multicast node
func WithNodeRandom() Config {
	return func(g *Generator) { g.node = idkit.RandomNode() }
}

// WithNodeFromEnv configures node using env variable CONFIG_IDKIT_NODE_ID
func WithNodeFromEnv() Config {
	return func(g *Generator) { g.node = idkit.NodeFromEnv() }
}

// WithSequence configures ⟨𝒔⟩ clock sequence source
func WithSequence(seq idkit.SequenceSource) Config {
	return func(g *Generator) { g.seq = seq }
}

// WithBytes configures random bytes of versions 4 and 7
func WithBytes(random idkit.BytesGenerator) Config {
	return func(g *Generator) { g.random = random }
}

// WithHash configures hash functions of versions 3 and 5
func WithHash(md5, sha1 idkit.HashFunction) Config {
	return func(g *Generator) {
		g.md5 = md5
		g.sha1 = sha1
	}
}

// WithDCE configures source of local identifiers for version 2
func WithDCE(dce idkit.DCE) Config {
	return func(g *Generator) { g.dce = dce }
}

// WithLogger configures logger
func WithLogger(logger zerolog.Logger) Config {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates generator. By default, it uses system clock, random
// node, random clock sequence, crypto/rand, MD5, SHA-1 and process uid/gid.
func NewGenerator(opts ...Config) *Generator {
	g := &Generator{
		clock:  idkit.SystemClock,
		random: idkit.RandomBytes,
		md5:    idkit.MD5,
		sha1:   idkit.SHA1,
		dce:    idkit.SystemDCE,
		logger: zerolog.Nop(),
	}
	defopt := []Config{WithNodeRandom()}

	for _, opt := range append(defopt, opts...) {
		opt(g)
	}

	if g.seq == nil {
		g.seq = idkit.NewStatefulSequence(randomUint64(g.random) & 0x3fff)
	}

	g.gregorian = idkit.NewSequencer(14, g.seq, g.logger)
	g.security = idkit.NewSequencer(6, g.seq, g.logger)
	return g
}

func randomUint64(random idkit.BytesGenerator) uint64 {
	b, err := random.Bytes(8, time.Time{})
	if err != nil || len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// V1 generates Gregorian time-based UUID
func (g *Generator) V1() (UUIDv1, error) { return g.V1At(g.clock.Now()) }

// V1At generates Gregorian time-based UUID at given time
func (g *Generator) V1At(t time.Time) (UUIDv1, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ticks, err := g.timeBased(t)
	if err != nil {
		return Typed[V1]{}, err
	}
	putTicksV1(&u, ticks)
	return Typed[V1]{uuid: withVersion(u, 1)}, nil
}

// V6 generates reordered Gregorian time-based UUID
func (g *Generator) V6() (UUIDv6, error) { return g.V6At(g.clock.Now()) }

// V6At generates reordered Gregorian time-based UUID at given time
func (g *Generator) V6At(t time.Time) (UUIDv6, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ticks, err := g.timeBased(t)
	if err != nil {
		return Typed[V6]{}, err
	}
	putTicksV6(&u, ticks)
	return Typed[V6]{uuid: withVersion(u, 6)}, nil
}

// V6N generates batch of n ordered UUIDs, the lock is taken once
func (g *Generator) V6N(n int) ([]UUIDv6, error) {
	if n < 0 {
		return nil, idkit.Invalid("uuid: batch size %d", n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := make([]UUIDv6, 0, n)
	for i := 0; i < n; i++ {
		u, ticks, err := g.timeBased(g.clock.Now())
		if err != nil {
			return nil, err
		}
		putTicksV6(&u, ticks)
		seq = append(seq, Typed[V6]{uuid: withVersion(u, 6)})
	}
	return seq, nil
}

// timeBased composes clock sequence and node, returns ticks to embed
func (g *Generator) timeBased(t time.Time) (UUID, uint64, error) {
	var u UUID

	ticks, err := idkit.GregorianTicks(t)
	if err != nil {
		return u, 0, err
	}

	addr := g.node.Address()
	node, err := idkit.ParseNode(addr)
	if err != nil {
		return u, 0, err
	}

	tick, ok := g.gregorian.Next(addr, idkit.GregorianTime(ticks), ticks, gregorianMax)
	if !ok {
		return u, 0, idkit.Invalid("uuid: time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(idkit.ISO8601),
			idkit.GregorianTime(gregorianMax).Format(idkit.ISO8601),
			idkit.EpochGregorian.Name(),
		)
	}

	binary.BigEndian.PutUint16(u[8:10], uint16(tick.Seq))
	copy(u[10:16], node[:])
	return u, tick.Time, nil
}

// V2 generates DCE Security UUID for the local identifier of domain
func (g *Generator) V2(domain Domain, id uint32) (UUIDv2, error) {
	return g.V2At(domain, id, g.clock.Now())
}

// V2Person generates DCE Security UUID of process user
func (g *Generator) V2Person() (UUIDv2, error) {
	id, err := g.dce.UID()
	if err != nil {
		return Typed[V2]{}, err
	}
	return g.V2(DomainPerson, id)
}

// V2Group generates DCE Security UUID of process group
func (g *Generator) V2Group() (UUIDv2, error) {
	id, err := g.dce.GID()
	if err != nil {
		return Typed[V2]{}, err
	}
	return g.V2(DomainGroup, id)
}

// V2At generates DCE Security UUID at given time. The time resolution of
// version 2 is 2^32 ticks (about 7 minutes), 6 bits of clock sequence
// disambiguate identifiers of the same interval.
func (g *Generator) V2At(domain Domain, id uint32, t time.Time) (UUIDv2, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticks, err := idkit.GregorianTicks(t)
	if err != nil {
		return Typed[V2]{}, err
	}

	addr := g.node.Address()
	node, err := idkit.ParseNode(addr)
	if err != nil {
		return Typed[V2]{}, err
	}

	interval := ticks >> 32
	tick, ok := g.security.Next(addr+"/"+domain.String(), idkit.GregorianTime(interval<<32), interval, gregorianMax>>32)
	if !ok {
		return Typed[V2]{}, idkit.Invalid("uuid: time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(idkit.ISO8601),
			idkit.GregorianTime(gregorianMax).Format(idkit.ISO8601),
			idkit.EpochGregorian.Name(),
		)
	}

	var u UUID
	putTicksV1(&u, tick.Time<<32)
	binary.BigEndian.PutUint32(u[0:4], id)
	u[8] = byte(tick.Seq)
	u[9] = byte(domain)
	copy(u[10:16], node[:])
	return Typed[V2]{uuid: withVersion(u, 2)}, nil
}

// V3 generates name-based UUID using configured MD5
func (g *Generator) V3(ns UUID, name string) UUIDv3 {
	return nameBased[V3](g.md5, ns, name)
}

// V5 generates name-based UUID using configured SHA-1
func (g *Generator) V5(ns UUID, name string) UUIDv5 {
	return nameBased[V5](g.sha1, ns, name)
}

// V4 generates random UUID
func (g *Generator) V4() (UUIDv4, error) {
	b, err := g.random.Bytes(16, g.clock.Now())
	if err != nil {
		return Typed[V4]{}, err
	}
	if len(b) != 16 {
		return Typed[V4]{}, idkit.InvalidLength("uuid: random source returned %d bytes, expected 16", len(b))
	}
	return Typed[V4]{uuid: withVersion(fromCanonical(b), 4)}, nil
}

// V7 generates Unix epoch time-based UUID
func (g *Generator) V7() (UUIDv7, error) { return g.V7At(g.clock.Now()) }

// V7At generates Unix epoch time-based UUID at given time.
//
// Identifiers of one generator are strictly increasing. Within the same
// millisecond (or when the clock moves backward) the 74 random bits are
// incremented, the overflow advances the embedded millisecond.
func (g *Generator) V7At(t time.Time) (UUIDv7, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v7(t)
}

// V7N generates batch of n ordered UUIDs, the lock is taken once
func (g *Generator) V7N(n int) ([]UUIDv7, error) {
	if n < 0 {
		return nil, idkit.Invalid("uuid: batch size %d", n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := make([]UUIDv7, 0, n)
	for i := 0; i < n; i++ {
		u, err := g.v7(g.clock.Now())
		if err != nil {
			return nil, err
		}
		seq = append(seq, u)
	}
	return seq, nil
}

func (g *Generator) v7(t time.Time) (UUIDv7, error) {
	ms, err := idkit.EpochUnix.Timestamp(t, 48)
	if err != nil {
		return Typed[V7]{}, err
	}

	switch {
	case !g.seeded || ms > g.ms:
		if err := g.v7Random(t); err != nil {
			return Typed[V7]{}, err
		}
		g.ms = ms
		g.seeded = true
	default:
		if ms < g.ms {
			g.logger.Warn().
				Uint64("ms", ms).
				Uint64("last", g.ms).
				Msg("clock moved backward, pinned to last millisecond")
		}
		g.randB++
		if g.randB > randBMax {
			g.randB = 0
			g.randA++
		}
		if g.randA > randAMax {
			g.logger.Debug().Uint64("ms", g.ms).Msg("random bits rollover")
			if err := g.v7Random(t); err != nil {
				return Typed[V7]{}, err
			}
			g.ms++
		}
	}

	if g.ms > v7Max {
		return Typed[V7]{}, idkit.Invalid("uuid: time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(idkit.ISO8601),
			idkit.EpochUnix.Max(48).Format(idkit.ISO8601),
			idkit.EpochUnix.Name(),
		)
	}

	var u UUID
	binary.BigEndian.PutUint64(u[0:8], g.ms<<16|g.randA)
	binary.BigEndian.PutUint64(u[8:16], g.randB)
	return Typed[V7]{uuid: withVersion(u, 7)}, nil
}

// v7Random seeds random bits of new millisecond, the top bit of rand_b is
// kept zero to leave room for increments.
func (g *Generator) v7Random(t time.Time) error {
	b, err := g.random.Bytes(10, t)
	if err != nil {
		return err
	}
	if len(b) != 10 {
		return idkit.InvalidLength("uuid: random source returned %d bytes, expected 10", len(b))
	}

	g.randA = uint64(binary.BigEndian.Uint16(b[0:2])) & randAMax
	g.randB = binary.BigEndian.Uint64(b[2:10]) & (randBMax >> 1)
	return nil
}

// V1ToV6 reorders timestamp of version 1 UUID
func V1ToV6(u UUIDv1) UUIDv6 {
	x := u.uuid
	putTicksV6(&x, ticksV1(u.uuid))
	return Typed[V6]{uuid: withVersion(x, 6)}
}

// V6ToV1 reorders timestamp of version 6 UUID
func V6ToV1(u UUIDv6) UUIDv1 {
	x := u.uuid
	putTicksV1(&x, ticksV6(u.uuid))
	return Typed[V1]{uuid: withVersion(x, 1)}
}
