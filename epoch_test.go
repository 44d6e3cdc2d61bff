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
	"strings"
	"testing"
	"time"

	"github.com/fogfish/idkit"
	"github.com/fogfish/it/v2"
)

var now = time.Date(2024, 5, 17, 10, 30, 15, 123456789, time.UTC)

func TestEpoch(t *testing.T) {
	it.Then(t).Should(
		it.Equal(idkit.EpochDiscord.ISO8601(), "2015-01-01T00:00:00.000Z"),
		it.Equal(idkit.EpochTwitter.ISO8601(), "2010-11-04T01:42:54.657Z"),
		it.Equal(idkit.EpochUnix.ISO8601(), "1970-01-01T00:00:00.000Z"),
		it.Equal(idkit.EpochGregorian.ISO8601(), "1582-10-15T00:00:00.000Z"),
		it.Equal(idkit.EpochUnix.Max(41).Format(idkit.ISO8601), "2039-09-07T15:47:35.551Z"),
		it.Equal(idkit.EpochDiscord.Name(), "discord"),
		it.Equal(idkit.EpochAt(now).Milliseconds(), now.UnixMilli()),
	)
}

func TestTimestamp(t *testing.T) {
	ms, err := idkit.EpochDiscord.Timestamp(now, 42)
	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(ms, 295871415123),
		it.True(idkit.EpochDiscord.At(ms).Equal(now.Truncate(time.Millisecond))),
	)

	_, err = idkit.EpochDiscord.Timestamp(time.Date(2014, 12, 31, 23, 59, 59, 0, time.UTC), 42)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		it.True(strings.Contains(err.Error(), "2015-01-01T00:00:00.000Z")),
	)

	_, err = idkit.EpochUnix.Timestamp(time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC), 41)
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
		it.True(strings.Contains(err.Error(), "2039-09-07T15:47:35.551Z")),
	)
}

func TestGregorian(t *testing.T) {
	at := time.Date(1998, 2, 4, 22, 13, 53, 151182400, time.UTC)
	ticks, err := idkit.GregorianTicks(at)

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(ticks, 0x1d19dad6ba7b810),
		it.True(idkit.GregorianTime(ticks).Equal(at)),
		it.True(idkit.GregorianTime(0).Equal(idkit.EpochGregorian.Time())),
	)

	_, err = idkit.GregorianTicks(time.Date(1582, 10, 14, 0, 0, 0, 0, time.UTC))
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)

	_, err = idkit.GregorianTicks(time.Date(5236, 4, 1, 0, 0, 0, 0, time.UTC))
	it.Then(t).Should(
		it.True(errors.Is(err, idkit.ErrInvalidArgument)),
	)
}
