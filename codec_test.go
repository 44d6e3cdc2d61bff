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
	"errors"
	"testing"

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
)

var codec = idkit.Codec{
	Family:  "test",
	Size:    2,
	Lengths: idkit.Lengths{Bytes: 2, Hex: 4, String: 5},
	Display: idkit.DashedHex{Family: "test", Groups: []int{2, 2}},
}

func TestFormatOf(t *testing.T) {
	it.Then(t).Should(
		it.Equal(codec.Lengths.FormatOf(2), idkit.FormatBytes),
		it.Equal(codec.Lengths.FormatOf(4), idkit.FormatHex),
		it.Equal(codec.Lengths.FormatOf(5), idkit.FormatString),
		it.Equal(codec.Lengths.FormatOf(0), idkit.FormatUnknown),
		it.Equal(codec.Lengths.FormatOf(3), idkit.FormatUnknown),
		it.Equal(idkit.Lengths{Bytes: 8}.FormatOf(0), idkit.FormatUnknown),
		it.Equal(idkit.FormatInteger.String(), "integer"),
	)
}

func TestCodecParse(t *testing.T) {
	for value, expect := range map[string][]byte{
		"\xab\xcd": {0xab, 0xcd},
		"abcd":     {0xab, 0xcd},
		"ABCD":     {0xab, 0xcd},
		"ab-cd":    {0xab, 0xcd},
	} {
		b, err := codec.Parse(value)
		it.Then(t).Should(
			it.Equal(err, nil),
			it.Equal(string(b), string(expect)),
		)
	}

	for _, value := range []string{"", "abc", "abxd", "ab:cd", "xy-cd"} {
		_, err := codec.Parse(value)
		it.Then(t).Should(
			it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		)
	}
}

func TestCodecConvert(t *testing.T) {
	for _, tc := range []struct {
		value    string
		from, to idkit.Format
		expect   string
	}{
		{"abcd", idkit.FormatHex, idkit.FormatInteger, "43981"},
		{"43981", idkit.FormatInteger, idkit.FormatString, "ab-cd"},
		{"ab-cd", idkit.FormatString, idkit.FormatHex, "abcd"},
		{"0", idkit.FormatInteger, idkit.FormatHex, "0000"},
		{"\xff\xff", idkit.FormatBytes, idkit.FormatInteger, "65535"},
	} {
		s, err := codec.Convert(tc.value, tc.from, tc.to)
		it.Then(t).Should(
			it.Equal(err, nil),
			it.Equal(s, tc.expect),
		)
	}

	_, err := codec.Convert("65536", idkit.FormatInteger, idkit.FormatHex)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)

	_, err = codec.Encode(idkit.FormatHex, []byte{0x01})
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidLength)),
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}

func TestCrockford32(t *testing.T) {
	b := []byte{
		0x01, 0x56, 0x3e, 0x3a, 0xb5, 0xd3, 0xd6, 0x76,
		0x4c, 0x61, 0xef, 0xb9, 0x93, 0x02, 0xbd, 0x5b,
	}

	it.Then(t).Should(
		it.Equal(idkit.EncodeCrockford32(b, 26), "01ARZ3NDEKTSV4RRFFQ69G5FAV"),
		it.Equal(idkit.EncodeCrockford32([]byte{0xff}, 2), "7Z"),
		it.Equal(idkit.EncodeCrockford32([]byte{0x00}, 3), "000"),
	)

	x, err := idkit.DecodeCrockford32("01arz3ndektsv4rrffq69g5fav", 16)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(string(x), string(b)),
	)

	y, err := idkit.DecodeCrockford32("oI", 1)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(y[0], 0x01),
	)

	for _, s := range []string{"80", "U", "0-", "*"} {
		_, err := idkit.DecodeCrockford32(s, 1)
		it.Then(t).Should(
			it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		)
	}
}
