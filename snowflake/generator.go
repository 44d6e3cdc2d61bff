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
	"crypto/rand"
	"encoding/binary"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fogfish/idkit"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Source of snowflakes
type Source interface {
	Layout() *Layout
	Next() (GenericID, error)
	NextN(n int) ([]GenericID, error)
}

// Generator of snowflakes of a layout. It owns ⟨𝒔⟩ clock sequence state,
// the instance is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	layout *Layout
	clock  idkit.Clock
	source idkit.SequenceSource
	logger zerolog.Logger
	values map[string]uint64

	// keyed hash of hashed layouts
	table string
	salt  []byte
	hash  idkit.HashFunction

	key       string
	rest      uint64
	sequencer *idkit.Sequencer
}

// Config option of generator
type Config func(*Generator)

// WithClock configures source of wall-clock time
func WithClock(clock idkit.Clock) Config {
	return func(g *Generator) { g.clock = clock }
}

// WithSequence configures ⟨𝒔⟩ sequence source
func WithSequence(seq idkit.SequenceSource) Config {
	return func(g *Generator) { g.source = seq }
}

// WithLogger configures logger
func WithLogger(logger zerolog.Logger) Config {
	return func(g *Generator) { g.logger = logger }
}

// WithField configures ⟨𝒍⟩ value of the named field
func WithField(name string, value uint64) Config {
	return func(g *Generator) { g.values[name] = value }
}

func WithMachine(id uint64) Config { return WithField("machine", id) }
func WithWorker(id uint64) Config  { return WithField("worker", id) }
func WithProcess(id uint64) Config { return WithField("process", id) }
func WithShard(id uint64) Config   { return WithField("shard", id) }
func WithNode(id uint64) Config    { return WithField("node", id) }

// WithTable configures table name of Mastodon layout
func WithTable(table string) Config {
	return func(g *Generator) { g.table = table }
}

// WithSalt configures secret of Mastodon layout, random by default
func WithSalt(salt []byte) Config {
	return func(g *Generator) { g.salt = salt }
}

// WithHash configures hash function of Mastodon layout, MD5 by default
func WithHash(hash idkit.HashFunction) Config {
	return func(g *Generator) { g.hash = hash }
}

// NewGenerator creates generator of layout. Fields not configured are zero,
// values must fit their fields.
func NewGenerator(layout *Layout, opts ...Config) (*Generator, error) {
	g := &Generator{
		layout: layout,
		clock:  idkit.SystemClock,
		logger: zerolog.Nop(),
		values: map[string]uint64{},
		hash:   idkit.MD5,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.source == nil {
		g.source = idkit.NewStatefulSequence(0)
	}

	if layout.hashed && g.salt == nil {
		g.salt = make([]byte, 16)
		if _, err := io.ReadFull(rand.Reader, g.salt); err != nil {
			return nil, err
		}
	}

	var errs *multierror.Error
	for name, value := range g.values {
		f, has := layout.fields[name]
		if !has {
			errs = multierror.Append(errs,
				idkit.Invalid("snowflake %s: unknown field %q", layout.name, name))
			continue
		}
		if value > f.Max() {
			errs = multierror.Append(errs,
				idkit.Invalid("snowflake %s: %s %d exceeds maximum %d", layout.name, name, value, f.Max()))
			continue
		}
		g.rest = f.Put(g.rest, value)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	g.key = layout.name + "/" + strconv.FormatUint(g.rest, 16)
	g.sequencer = idkit.NewSequencer(layout.sequence.Bits, g.source, g.logger)
	return g, nil
}

func (g *Generator) Layout() *Layout { return g.layout }

// Next generates snowflake
func (g *Generator) Next() (GenericID, error) { return g.NextAt(g.clock.Now()) }

// NextAt generates snowflake at given time
func (g *Generator) NextAt(t time.Time) (GenericID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next(t)
}

// NextN generates batch of n ordered snowflakes, the lock is taken once
func (g *Generator) NextN(n int) ([]GenericID, error) {
	if n < 0 {
		return nil, idkit.Invalid("snowflake %s: batch size %d", g.layout.name, n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := make([]GenericID, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.next(g.clock.Now())
		if err != nil {
			return nil, err
		}
		seq = append(seq, id)
	}
	return seq, nil
}

func (g *Generator) next(t time.Time) (GenericID, error) {
	ms, err := g.layout.epoch.Timestamp(t, g.layout.time.Bits)
	if err != nil {
		return GenericID{}, err
	}

	if g.layout.hashed {
		return g.hashed(ms), nil
	}

	tick, ok := g.sequencer.Next(g.key, g.layout.epoch.At(ms), ms, g.layout.time.Max())
	if !ok {
		return GenericID{}, idkit.Invalid("snowflake %s: time %s exceeds maximum %s of %s epoch",
			g.layout.name,
			g.layout.epoch.At(tick.Time).Format(idkit.ISO8601),
			g.layout.MaxTime().Format(idkit.ISO8601),
			g.layout.epoch.Name(),
		)
	}

	m := idkit.Pack(tick.Time, g.layout.time.Shift, g.rest|tick.Seq)
	if !m.IsNative() {
		g.logger.Debug().
			Str("layout", g.layout.name).
			Str("id", m.String()).
			Msg("snowflake escalated to arbitrary precision")
	}

	b, err := m.Bytes(8)
	if err != nil {
		return GenericID{}, err
	}
	return g.layout.id(b), nil
}

// hashed composes timestamp with low 16 bits of keyed hash of the table
// plus sequence. Identifiers are well-ordered within 1 ms only.
func (g *Generator) hashed(ms uint64) GenericID {
	shifted := ms << g.layout.time.Shift

	data := make([]byte, 0, len(g.table)+len(g.salt)+20)
	data = append(data, g.table...)
	data = append(data, g.salt...)
	data = strconv.AppendUint(data, shifted, 10)

	digest := g.hash.Hash(data)
	var base uint64
	if len(digest) >= 2 {
		base = uint64(binary.BigEndian.Uint16(digest[len(digest)-2:]))
	}

	seq := g.source.Next(g.table, g.layout.epoch.At(ms))
	tail := g.layout.sequence.Get(base + seq)
	return g.layout.FromUint64(shifted | tail)
}

// Flake is generator of typed snowflakes
type Flake[F Flavor] struct{ gen *Generator }

// New creates generator of flavor F
func New[F Flavor](opts ...Config) (*Flake[F], error) {
	gen, err := NewGenerator(layoutOf[F](), opts...)
	if err != nil {
		return nil, err
	}
	return &Flake[F]{gen: gen}, nil
}

// Generator is untyped generator behind
func (f *Flake[F]) Generator() *Generator { return f.gen }

// Next generates snowflake
func (f *Flake[F]) Next() (ID[F], error) { return typed[F](f.gen.Next()) }

// NextAt generates snowflake at given time
func (f *Flake[F]) NextAt(t time.Time) (ID[F], error) { return typed[F](f.gen.NextAt(t)) }

// NextN generates batch of n ordered snowflakes
func (f *Flake[F]) NextN(n int) ([]ID[F], error) {
	seq, err := f.gen.NextN(n)
	if err != nil {
		return nil, err
	}

	ids := make([]ID[F], len(seq))
	for i, x := range seq {
		ids[i] = ID[F]{b: x.b}
	}
	return ids, nil
}
