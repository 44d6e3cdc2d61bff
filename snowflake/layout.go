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
	"fmt"
	"time"

	"github.com/fogfish/idkit"
)

// Names of fields common to every layout
const (
	FieldTime     = "time"
	FieldSequence = "sequence"
)

// Bits is named field between timestamp and sequence
type Bits struct {
	Name string
	Bits uint
}

// Layout of 64-bit snowflake. Layouts of 63 bits keep the sign bit zero.
//
//	|- 0 -|--- time ---|--- fields ... ---|--- sequence ---|
//	63                                                     0
type Layout struct {
	name     string
	epoch    idkit.Epoch
	time     idkit.Field
	sequence idkit.Field
	names    []string
	fields   map[string]idkit.Field
	hashed   bool
}

// NewLayout defines layout of time bits, sequence bits and named fields in
// between (most significant first). The widths sum up to 64 bits, or to 63
// bits with the sign bit reserved.
func NewLayout(name string, epoch idkit.Epoch, timeBits uint, seqBits uint, fields ...Bits) (*Layout, error) {
	total := timeBits + seqBits
	for _, f := range fields {
		total += f.Bits
	}
	if total != 64 && total != 63 {
		return nil, idkit.Invalid("snowflake: layout %s has %d bits, expected 63 or 64", name, total)
	}
	if timeBits == 0 || timeBits > 63 {
		return nil, idkit.Invalid("snowflake: layout %s has %d bits of time", name, timeBits)
	}

	l := &Layout{
		name:     name,
		epoch:    epoch,
		time:     idkit.Field{Shift: total - timeBits, Bits: timeBits},
		sequence: idkit.Field{Shift: 0, Bits: seqBits},
		fields:   map[string]idkit.Field{},
	}

	shift := total - timeBits
	for _, f := range fields {
		if _, has := l.fields[f.Name]; has || f.Name == FieldTime || f.Name == FieldSequence {
			return nil, idkit.Invalid("snowflake: layout %s has duplicate field %q", name, f.Name)
		}
		shift -= f.Bits
		l.fields[f.Name] = idkit.Field{Shift: shift, Bits: f.Bits}
		l.names = append(l.names, f.Name)
	}

	return l, nil
}

func mustLayout(name string, epoch idkit.Epoch, timeBits uint, seqBits uint, fields ...Bits) *Layout {
	l, err := NewLayout(name, epoch, timeBits, seqBits, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Layouts of well-known flavors
var (
	LayoutTwitter   = mustLayout("twitter", idkit.EpochTwitter, 41, 12, Bits{"machine", 10})
	LayoutDiscord   = mustLayout("discord", idkit.EpochDiscord, 42, 12, Bits{"worker", 5}, Bits{"process", 5})
	LayoutInstagram = mustLayout("instagram", idkit.EpochInstagram, 41, 10, Bits{"shard", 13})
	LayoutMastodon  = hashed(mustLayout("mastodon", idkit.EpochMastodon, 48, 16))
	LayoutGeneric   = Generic(idkit.EpochUnix)
)

func hashed(l *Layout) *Layout {
	l.hashed = true
	return l
}

// Generic layout 42 bits of time, 10 bits of node and 12 bits of sequence
// since the epoch
func Generic(epoch idkit.Epoch) *Layout {
	return mustLayout("generic", epoch, 42, 12, Bits{"node", 10})
}

func (l *Layout) Name() string       { return l.name }
func (l *Layout) Epoch() idkit.Epoch { return l.epoch }
func (l *Layout) TimeBits() uint     { return l.time.Bits }
func (l *Layout) String() string     { return fmt.Sprintf("%s(%s)", l.name, l.epoch.ISO8601()) }

// Fields names in order of significance, time and sequence are excluded
func (l *Layout) Fields() []string { return append([]string(nil), l.names...) }

// Field definition by name
func (l *Layout) Field(name string) (idkit.Field, bool) {
	switch name {
	case FieldTime:
		return l.time, true
	case FieldSequence:
		return l.sequence, true
	}
	f, has := l.fields[name]
	return f, has
}

// MaxTime is the latest time representable by layout
func (l *Layout) MaxTime() time.Time { return l.epoch.Max(l.time.Bits) }
