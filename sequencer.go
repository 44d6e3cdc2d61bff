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
	"time"

	"github.com/rs/zerolog"
)

// Sequencer is the clock sequence state ⟨𝒕, 𝒔⟩ of one generator instance.
//
// Each call masks the raw sequence to the field width. The rollover counter
// is added to the clock tick, it is incremented after the sequence reaches
// the field maximum so that the following identifier, which sequence wraps,
// carries an advanced tick. The effective tick never decreases, a backward
// clock is absorbed into the rollover counter.
//
// Sequencer is not safe for concurrent use, the owning generator serialises
// calls.
type Sequencer struct {
	field    Field
	source   SequenceSource
	logger   zerolog.Logger
	rollover uint64
	floor    uint64
}

// Tick is the composition of effective clock tick and masked sequence
type Tick struct {
	Time uint64
	Seq  uint64
}

// NewSequencer creates clock sequence state for sequence field of bits width
func NewSequencer(bits uint, source SequenceSource, logger zerolog.Logger) *Sequencer {
	return &Sequencer{
		field:  Field{Bits: bits},
		source: source,
		logger: logger,
	}
}

// Rollover returns the number of ticks added to the clock
func (s *Sequencer) Rollover() uint64 { return s.rollover }

// Next composes the tick for raw clock tick. The key and time t are passed to
// the sequence source, t should be truncated to the tick resolution. The
// state is not changed if effective tick exceeds limit, false is returned.
func (s *Sequencer) Next(key string, t time.Time, tick uint64, limit uint64) (Tick, bool) {
	seq := s.field.Get(s.source.Next(key, t))

	rollover := s.rollover
	eff := tick + rollover
	if eff < s.floor {
		s.logger.Warn().
			Str("key", key).
			Uint64("tick", eff).
			Uint64("floor", s.floor).
			Msg("clock moved backward, pinned to last tick")
		rollover += s.floor - eff
		eff = s.floor
	}

	if eff > limit {
		return Tick{Time: eff, Seq: seq}, false
	}

	s.rollover = rollover
	s.floor = eff
	if seq == s.field.Max() {
		s.rollover++
		s.floor = eff + 1
		s.logger.Debug().
			Str("key", key).
			Uint64("tick", eff).
			Uint64("rollover", s.rollover).
			Msg("clock sequence rollover")
	}

	return Tick{Time: eff, Seq: seq}, true
}
