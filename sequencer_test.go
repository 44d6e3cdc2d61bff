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
package idkit_test

import (
	"testing"
	"time"

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
	"github.com/rs/zerolog"
)

func TestSequencerRollover(t *testing.T) {
	seq := idkit.NewSequencer(2, idkit.NewStatefulSequence(0), zerolog.Nop())

	var ticks []idkit.Tick
	for i := 0; i < 9; i++ {
		tick, ok := seq.Next("k", now, 10, 100)
		if !ok {
			t.Fatalf("limit reached at %d", i)
		}
		ticks = append(ticks, tick)
	}

	it.Then(t).Should(
		it.Equal(ticks[0], idkit.Tick{Time: 10, Seq: 0}),
		it.Equal(ticks[3], idkit.Tick{Time: 10, Seq: 3}),
		it.Equal(ticks[4], idkit.Tick{Time: 11, Seq: 0}),
		it.Equal(ticks[8], idkit.Tick{Time: 12, Seq: 0}),
		it.Equal(seq.Rollover(), 2),
	)
}

func TestSequencerMaxSequence(t *testing.T) {
	seq := idkit.NewSequencer(2, idkit.FrozenSequence(7), zerolog.Nop())

	a, _ := seq.Next("k", now, 10, 100)
	b, _ := seq.Next("k", now, 10, 100)

	it.Then(t).Should(
		it.Equal(a, idkit.Tick{Time: 10, Seq: 3}),
		it.Equal(b, idkit.Tick{Time: 11, Seq: 3}),
	)
}

func TestSequencerBackwardClock(t *testing.T) {
	seq := idkit.NewSequencer(4, idkit.FrozenSequence(1), zerolog.Nop())

	a, _ := seq.Next("k", now, 20, 100)
	b, _ := seq.Next("k", now.Add(-time.Second), 5, 100)
	c, _ := seq.Next("k", now.Add(time.Second), 30, 100)

	it.Then(t).Should(
		it.Equal(a.Time, 20),
		it.Equal(b.Time, 20),
		it.True(c.Time > b.Time),
	)
}

func TestSequencerLimit(t *testing.T) {
	seq := idkit.NewSequencer(1, idkit.FrozenSequence(1), zerolog.Nop())

	a, ok := seq.Next("k", now, 100, 100)
	it.Then(t).Should(
		it.True(ok),
		it.Equal(a.Time, 100),
	)

	_, ok = seq.Next("k", now, 100, 100)
	it.Then(t).Should(
		it.True(!ok),
		it.Equal(seq.Rollover(), 1),
	)
}
