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

package uuid_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fogfish/idkit"
	"github.com/fogfish/idkit/uuid"
	"github.com/fogfish/it/v2"
)

var now = time.Date(2024, 5, 17, 10, 30, 15, 123456789, time.UTC)

func frozen(opts ...uuid.Config) *uuid.Generator {
	defopt := []uuid.Config{
		uuid.WithClock(idkit.FrozenClock(now)),
		uuid.WithNode(idkit.StaticNode("0123456789ab")),
		uuid.WithBytes(idkit.FixedBytes(0x00)),
	}
	return uuid.NewGenerator(append(defopt, opts...)...)
}

func TestV1(t *testing.T) {
	g := frozen(uuid.WithSequence(idkit.FrozenSequence(0x1234)))
	a, err := g.V1()

	ts, _ := a.Time()
	node, _ := a.Node()
	seq, _ := a.ClockSequence()

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(a.Version(), 1),
		it.True(ts.Equal(now.Truncate(100*time.Nanosecond))),
		it.Equal(node, "0123456789ab"),
		it.Equal(seq, 0x1234),
	)

	_, err = uuid.FromStringAs[uuid.V1](a.String())
	it.Then(t).Should(it.Equal(err, nil))
}

func TestV1BeforeEpoch(t *testing.T) {
	g := frozen()
	_, err := g.V1At(time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC))

	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}

func TestV6(t *testing.T) {
	g := frozen(uuid.WithSequence(idkit.FrozenSequence(0x1234)))
	a, err := g.V6()

	ts, _ := a.Time()
	node, _ := a.Node()
	seq, _ := a.ClockSequence()

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(a.Version(), 6),
		it.True(ts.Equal(now.Truncate(100*time.Nanosecond))),
		it.Equal(node, "0123456789ab"),
		it.Equal(seq, 0x1234),
	)
}

func TestV1ToV6(t *testing.T) {
	g := frozen()
	v1, _ := g.V1()
	v6 := uuid.V1ToV6(v1)

	t1, _ := v1.Time()
	t6, _ := v6.Time()

	it.Then(t).Should(
		it.Equal(v6.Version(), 6),
		it.True(t1.Equal(t6)),
		it.Equal(uuid.V6ToV1(v6), v1),
	)
}

func TestV6Monotonic(t *testing.T) {
	g := frozen()

	// frozen clock, two full rollovers of 14 bits clock sequence
	seq, err := g.V6N(2*0x4000 + 100)
	it.Then(t).Should(it.Equal(err, nil))

	for i := 1; i < len(seq); i++ {
		c, _ := seq[i-1].Compare(seq[i])
		if c != -1 {
			t.Fatalf("%s is not before %s", seq[i-1], seq[i])
		}
	}
}

func TestV6BackwardClock(t *testing.T) {
	ts := []time.Time{now, now.Add(-time.Second), now.Add(-time.Minute), now}
	i := 0
	clock := idkit.ClockFunc(func() time.Time {
		x := ts[i%len(ts)]
		i++
		return x
	})

	g := frozen(uuid.WithClock(clock))
	seq, err := g.V6N(len(ts))
	it.Then(t).Should(it.Equal(err, nil))

	for i := 1; i < len(seq); i++ {
		c, _ := seq[i-1].Compare(seq[i])
		if c != -1 {
			t.Fatalf("%s is not before %s", seq[i-1], seq[i])
		}
	}
}

func TestV2(t *testing.T) {
	g := frozen(
		uuid.WithDCE(idkit.StaticDCE{User: 1000, Group: 100}),
		uuid.WithSequence(idkit.FrozenSequence(5)),
	)

	person, err := g.V2Person()
	domain, _ := person.LocalDomain()
	id, _ := person.LocalIdentifier()
	seq, _ := person.ClockSequence()
	ts, _ := person.Time()

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(person.Version(), 2),
		it.Equal(domain, uuid.DomainPerson),
		it.Equal(id, 1000),
		it.Equal(seq, 5),
		it.True(!ts.After(now)),
		it.True(now.Sub(ts) < 430*time.Second),
	)

	group, _ := g.V2Group()
	domain, _ = group.LocalDomain()
	id, _ = group.LocalIdentifier()

	it.Then(t).Should(
		it.Equal(domain, uuid.DomainGroup),
		it.Equal(id, 100),
		it.Equal(domain.String(), "group"),
	)

	org, _ := g.V2(uuid.DomainOrg, 42)
	domain, _ = org.LocalDomain()
	it.Then(t).Should(
		it.Equal(domain, uuid.DomainOrg),
	)
}

func TestV3V5(t *testing.T) {
	g := frozen()

	it.Then(t).Should(
		it.Equal(g.V3(uuid.NamespaceDNS, "www.example.com").String(), "5df41881-3aed-3515-88a7-2f4a814cf09e"),
		it.Equal(g.V5(uuid.NamespaceDNS, "www.example.com").String(), "2ed6657d-e927-568b-95e1-2665a8aea6a2"),
	)
}

func TestV4(t *testing.T) {
	g := frozen(uuid.WithBytes(idkit.FixedBytes(0xff)))
	a, err := g.V4()

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(a.String(), "ffffffff-ffff-4fff-bfff-ffffffffffff"),
	)

	b, _ := uuid.NewGenerator().V4()
	c, _ := uuid.NewGenerator().V4()
	it.Then(t).ShouldNot(
		it.Equal(b, c),
	)
}

func TestV7(t *testing.T) {
	g := frozen()
	a, err := g.V7()
	ts, _ := a.Time()

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(a.Version(), 7),
		it.True(ts.Equal(now.Truncate(time.Millisecond))),
		it.Equal(a.String()[:13], "018f861a-3353"),
	)
}

func TestV7AtUnixEpoch(t *testing.T) {
	g := uuid.NewGenerator(uuid.WithBytes(idkit.FixedBytes(0xab)))
	a, err := g.V7At(time.Unix(0, 0))

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(a.String(), "00000000-0000-7bab-8bab-abababababab"),
	)
}

func TestBatchSize(t *testing.T) {
	g := frozen()
	v6, err6 := g.V6N(-1)
	v7, err7 := g.V7N(-1)
	empty, err := g.V7N(0)

	it.Then(t).Should(
		it.True(errors.Is(err6, idkit.ErrInvalidArgument)),
		it.True(errors.Is(err7, idkit.ErrInvalidArgument)),
		it.Equal(len(v6), 0),
		it.Equal(len(v7), 0),
		it.Equal(err, nil),
		it.Equal(len(empty), 0),
	)
}

func TestV7Monotonic(t *testing.T) {
	g := frozen()
	seq, err := g.V7N(10000)
	it.Then(t).Should(it.Equal(err, nil))

	for i := 1; i < len(seq); i++ {
		c, _ := seq[i-1].Compare(seq[i])
		if c != -1 {
			t.Fatalf("%s is not before %s", seq[i-1], seq[i])
		}
	}
}

func TestV7BackwardClock(t *testing.T) {
	g := frozen()
	a, _ := g.V7At(now)
	b, _ := g.V7At(now.Add(-time.Hour))
	c, _ := g.V7At(now.Add(time.Millisecond))

	ab, _ := a.Compare(b)
	bc, _ := b.Compare(c)
	it.Then(t).Should(
		it.Equal(ab, -1),
		it.Equal(bc, -1),
	)
}

func TestNodeFromEnv(t *testing.T) {
	t.Setenv(idkit.EnvNodeID, "abc@go")

	a, _ := uuid.NewGenerator(uuid.WithNodeFromEnv()).V1()
	b, _ := uuid.NewGenerator(uuid.WithNodeFromEnv()).V1()

	na, _ := a.Node()
	nb, _ := b.Node()
	it.Then(t).Should(
		it.Equal(na, nb),
		it.Equal(len(na), 12),
	)
}
