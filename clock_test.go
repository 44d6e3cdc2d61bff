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
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
)

func TestFrozenClock(t *testing.T) {
	clock := idkit.FrozenClock(now)

	it.Then(t).Should(
		it.Equal(clock.Now(), now),
		it.Equal(clock.Now(), now),
	)
}

func TestStatefulSequence(t *testing.T) {
	seq := idkit.NewStatefulSequence(5)

	a := seq.Next("a", now)
	b := seq.Next("a", now)
	c := seq.Next("b", now)
	d := seq.Next("a", now.Add(-time.Second))
	e := seq.Next("a", now.Add(time.Second))

	it.Then(t).Should(
		it.Equal(a, 5),
		it.Equal(b, 6),
		it.Equal(c, 5),
		it.Equal(d, 7),
		it.Equal(e, 5),
	)
}

func TestNode(t *testing.T) {
	node, err := idkit.ParseNode("0123456789AB")
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(hex.EncodeToString(node[:]), "0123456789ab"),
	)

	for _, addr := range []string{"", "0123456789", "0123456789xy", "01:23:45:67:89:ab"} {
		_, err := idkit.ParseNode(addr)
		it.Then(t).Should(
			it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		)
	}

	random, err := idkit.ParseNode(idkit.RandomNode().Address())
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(random[0]&0x01, 0x01),
	)

	_, err = idkit.ParseNode(idkit.SystemNode().Address())
	it.Then(t).Should(
		it.Equal(err, nil),
	)
}

func TestNodeFromEnv(t *testing.T) {
	t.Setenv(idkit.EnvNodeID, "host-a")

	it.Then(t).Should(
		it.Equal(idkit.NodeFromEnv().Address(), "c151e392ca52"),
		it.Equal(idkit.NodeFromEnv(), idkit.NodeFromEnv()),
	)
}

func TestBytes(t *testing.T) {
	fixed, _ := idkit.FixedBytes(0xab, 0xcd).Bytes(5, now)
	random, err := idkit.RandomBytes.Bytes(16, now)
	zero, _ := idkit.FixedBytes().Bytes(2, now)

	it.Then(t).Should(
		it.Equal(hex.EncodeToString(fixed), "abcdabcdab"),
		it.Equal(err, nil),
		it.Equal(len(random), 16),
		it.Equal(hex.EncodeToString(zero), "0000"),
	)
}

func TestHash(t *testing.T) {
	uid, _ := idkit.StaticDCE{User: 501, Group: 20}.UID()
	gid, _ := idkit.StaticDCE{User: 501, Group: 20}.GID()

	it.Then(t).Should(
		it.Equal(hex.EncodeToString(idkit.MD5.Hash(nil)), "d41d8cd98f00b204e9800998ecf8427e"),
		it.Equal(hex.EncodeToString(idkit.SHA1.Hash(nil)), "da39a3ee5e6b4b0d3255bfef95601890afd80709"),
		it.Equal(uid, 501),
		it.Equal(gid, 20),
	)
}
