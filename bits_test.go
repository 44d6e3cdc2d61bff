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

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
)

func ones(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xff
	}
	return b
}

func TestApplyVersionVariant(t *testing.T) {
	v4, err := idkit.ApplyVersionVariant(ones(16), 4, idkit.VariantRFC9562)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(hex.EncodeToString(v4), "ffffffffffff4fffbfffffffffffffff"),
	)

	ms, _ := idkit.ApplyVersionVariant(make([]byte, 16), 0, idkit.VariantMicrosoft)
	ncs, _ := idkit.ApplyVersionVariant(ones(16), 0, idkit.VariantNCS)
	future, _ := idkit.ApplyVersionVariant(make([]byte, 16), 8, idkit.VariantFuture)
	it.Then(t).Should(
		it.Equal(hex.EncodeToString(ms), "0000000000000000c000000000000000"),
		it.Equal(hex.EncodeToString(ncs), "ffffffffffffffff7fffffffffffffff"),
		it.Equal(hex.EncodeToString(future), "0000000000008000e000000000000000"),
	)

	_, err = idkit.ApplyVersionVariant(make([]byte, 15), 4, idkit.VariantRFC9562)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidLength)),
	)

	_, err = idkit.ApplyVersionVariant(make([]byte, 16), 16, idkit.VariantRFC9562)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}

func TestExtractVariant(t *testing.T) {
	for at, expect := range map[byte]idkit.Variant{
		0x00: idkit.VariantNCS,
		0x7f: idkit.VariantNCS,
		0x80: idkit.VariantRFC9562,
		0xbf: idkit.VariantRFC9562,
		0xc0: idkit.VariantMicrosoft,
		0xdf: idkit.VariantMicrosoft,
		0xe0: idkit.VariantFuture,
		0xff: idkit.VariantFuture,
	} {
		b := make([]byte, 16)
		b[8] = at
		v, err := idkit.ExtractVariant(b)
		it.Then(t).Should(
			it.Equal(err, nil),
			it.Equal(v, expect),
		)
	}

	b, _ := hex.DecodeString("6ba7b8109dad11d180b400c04fd430c8")
	v, err := idkit.ExtractVersion(b)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(v, 1),
		it.Equal(idkit.VariantMicrosoft.String(), "Microsoft"),
	)
}

func TestNilMax(t *testing.T) {
	it.Then(t).Should(
		it.True(idkit.IsNil(make([]byte, 8))),
		it.True(idkit.IsMax(ones(8))),
		it.True(!idkit.IsNil(ones(8))),
		it.True(!idkit.IsMax([]byte{0xff, 0xfe})),
		it.True(!idkit.IsNil(nil)),
		it.True(!idkit.IsMax(nil)),
	)
}

func TestField(t *testing.T) {
	worker := idkit.Field{Shift: 17, Bits: 5}
	w := worker.Put(0, 7)

	it.Then(t).Should(
		it.Equal(worker.Max(), 31),
		it.Equal(w, 7<<17),
		it.Equal(worker.Get(w), 7),
		it.Equal(worker.Put(w, 0xff), 31<<17),
		it.Equal(worker.Put(0xffffffffffffffff, 0), 0xffffffffffffffff&^(31<<17)),
		it.Equal(idkit.Field{Bits: 64}.Max(), 0xffffffffffffffff),
	)
}

func TestPack(t *testing.T) {
	native := idkit.Pack(1, 62, 5)
	signed := idkit.Pack(2, 62, 0)
	shifted := idkit.Pack(3, 63, 0)
	wide := idkit.Pack(1, 64, 1)

	it.Then(t).Should(
		it.True(native.IsNative()),
		it.Equal(native.String(), "4611686018427387909"),
		it.True(!signed.IsNative()),
		it.Equal(signed.String(), "9223372036854775808"),
		it.True(!shifted.IsNative()),
		it.Equal(shifted.String(), "27670116110564327424"),
		it.Equal(wide.String(), "18446744073709551617"),
	)
}
