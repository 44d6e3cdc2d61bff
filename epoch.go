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
)

// ISO8601 layout with millisecond precision
const ISO8601 = "2006-01-02T15:04:05.000Z"

// Epoch is a zero point of time-derived identifiers, in milliseconds since
// Unix epoch.
type Epoch struct {
	name string
	ms   int64
}

// Well-known epochs
var (
	EpochGregorian = Epoch{name: "gregorian", ms: -12219292800000}
	EpochUnix      = Epoch{name: "unix", ms: 0}
	EpochDiscord   = Epoch{name: "discord", ms: 1420070400000}
	EpochTwitter   = Epoch{name: "twitter", ms: 1288834974657}
	EpochInstagram = Epoch{name: "instagram", ms: 1314220021721}
	EpochMastodon  = Epoch{name: "mastodon", ms: 0}
)

// NewEpoch defines generic epoch at milliseconds since Unix epoch
func NewEpoch(ms int64) Epoch {
	return Epoch{name: "generic", ms: ms}
}

// EpochAt defines generic epoch at the given time, sub-millisecond precision
// is truncated.
func EpochAt(t time.Time) Epoch {
	return NewEpoch(t.UnixMilli())
}

func (e Epoch) Name() string        { return e.name }
func (e Epoch) Milliseconds() int64 { return e.ms }
func (e Epoch) Time() time.Time     { return time.UnixMilli(e.ms).UTC() }
func (e Epoch) ISO8601() string     { return e.Time().Format(ISO8601) }
func (e Epoch) String() string      { return e.name + "(" + e.ISO8601() + ")" }

// At returns wall-clock time of ms elapsed since epoch
func (e Epoch) At(ms uint64) time.Time {
	return time.UnixMilli(e.ms + int64(ms)).UTC()
}

// Max returns the latest time representable by timestamp field of bits width
func (e Epoch) Max(bits uint) time.Time {
	return e.At(1<<bits - 1)
}

// Timestamp returns milliseconds elapsed since epoch till t. Sub-millisecond
// precision is truncated. The value must fit timestamp field of bits width.
func (e Epoch) Timestamp(t time.Time, bits uint) (uint64, error) {
	ms := t.UnixMilli() - e.ms
	if ms < 0 {
		return 0, Invalid("time %s precedes %s epoch %s", t.UTC().Format(ISO8601), e.name, e.ISO8601())
	}
	if bits < 64 && uint64(ms) > 1<<bits-1 {
		return 0, Invalid("time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(ISO8601), e.Max(bits).Format(ISO8601), e.name)
	}
	return uint64(ms), nil
}

// Gregorian timestamp is the count of 100-nanosecond intervals since
// 1582-10-15T00:00:00Z, stored in 60 bits.
const (
	GregorianOffset = 0x01B21DD213814000
	gregorianSecond = 10_000_000
	gregorianUnix   = 12219292800
	gregorianBits   = 60
)

// GregorianTicks converts time to 100-nanosecond ticks since Gregorian epoch.
// Sub-tick precision is truncated.
func GregorianTicks(t time.Time) (uint64, error) {
	sec := t.Unix() + gregorianUnix
	if sec < 0 {
		return 0, Invalid("time %s precedes %s epoch %s", t.UTC().Format(ISO8601), EpochGregorian.name, EpochGregorian.ISO8601())
	}

	if uint64(sec) > (1<<gregorianBits-1)/gregorianSecond {
		return 0, Invalid("time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(ISO8601), GregorianTime(1<<gregorianBits-1).Format(ISO8601), EpochGregorian.name)
	}

	ticks := uint64(sec)*gregorianSecond + uint64(t.Nanosecond()/100)
	if ticks > 1<<gregorianBits-1 {
		return 0, Invalid("time %s exceeds maximum %s of %s epoch",
			t.UTC().Format(ISO8601), GregorianTime(1<<gregorianBits-1).Format(ISO8601), EpochGregorian.name)
	}
	return ticks, nil
}

// GregorianTime converts 100-nanosecond ticks since Gregorian epoch to time
func GregorianTime(ticks uint64) time.Time {
	sec := int64(ticks/gregorianSecond) - gregorianUnix
	nsec := int64(ticks%gregorianSecond) * 100
	return time.Unix(sec, nsec).UTC()
}
