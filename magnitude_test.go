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
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
)

func TestMagnitude(t *testing.T) {
	small := idkit.Unsigned(42)
	large := idkit.Unsigned(math.MaxUint64)

	n, ok := small.Int64()
	u, uok := large.Uint64()
	_, lok := large.Int64()

	it.Then(t).Should(
		it.True(small.IsNative()),
		it.True(!large.IsNative()),
		it.Equal(n, 42),
		it.True(ok),
		it.True(!lok),
		it.Equal(u, math.MaxUint64),
		it.True(uok),
		it.Equal(large.String(), "18446744073709551615"),
		it.Equal(small.Cmp(large), -1),
		it.Equal(large.Cmp(small), 1),
		it.Equal(large.Cmp(idkit.Big(new(big.Int).SetUint64(math.MaxUint64))), 0),
		it.True(idkit.Big(big.NewInt(7)).IsNative()),
		it.Equal(idkit.Native(-1).Sign(), -1),
	)
}

func TestMagnitudeOf(t *testing.T) {
	it.Then(t).Should(
		it.Equal(idkit.MagnitudeOf([]byte{0x01, 0x00}).String(), "256"),
		it.Equal(idkit.MagnitudeOf([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}).String(), "18446744073709551615"),
		it.Equal(idkit.MagnitudeOf(make([]byte, 16)).String(), "0"),
		it.True(idkit.MagnitudeOf(make([]byte, 16)).IsNative()),
	)
}

func TestParseMagnitude(t *testing.T) {
	m, err := idkit.ParseMagnitude("340282366920938463463374607431768211455")
	it.Then(t).Should(
		it.Equal(err, nil),
		it.True(!m.IsNative()),
	)

	b, err := m.Bytes(16)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.True(idkit.IsMax(b)),
	)

	_, err = m.Bytes(15)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)

	for _, s := range []string{"", "-1", "1.0", "0x10", " 1"} {
		_, err := idkit.ParseMagnitude(s)
		it.Then(t).Should(
			it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		)
	}

	_, err = idkit.Native(-1).Bytes(8)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)

	_, err = idkit.Native(256).Bytes(1)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}

func TestMagnitudeJSON(t *testing.T) {
	type T struct {
		A idkit.Magnitude `json:"a"`
		B idkit.Magnitude `json:"b"`
	}

	val := T{A: idkit.Native(42), B: idkit.Unsigned(math.MaxUint64)}
	b, err := json.Marshal(val)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(string(b), `{"a":42,"b":"18446744073709551615"}`),
	)

	var x T
	err = json.Unmarshal([]byte(`{"a":"42","b":18446744073709551615}`), &x)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(x.A.Cmp(val.A), 0),
		it.Equal(x.B.Cmp(val.B), 0),
	)

	err = json.Unmarshal([]byte(`{"a":"x"}`), &x)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}
