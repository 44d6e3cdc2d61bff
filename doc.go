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

/*
Package idkit is the shared engine of compact, sortable, binary identifiers.
The families are implemented by sub-packages:

↣ uuid: RFC 9562 UUIDs versions 1 to 8, Nil, Max, nonstandard values and
Microsoft GUID byte order.

↣ ulid: Universally Unique Lexicographically Sortable Identifier.

↣ snowflake: Twitter, Discord, Instagram, Mastodon and generic epochs.

# Representations

Every identifier is stored in one canonical form, a fixed length big-endian
byte sequence (16 bytes for UUID and ULID, 8 bytes for Snowflake). Other
representations are derived from it and validated against it:

	Format      UUID                                  ULID   Snowflake
	bytes       16                                    16     8
	hex         32                                    32     16
	string      36 (8-4-4-4-12)                       26     decimal
	integer     Magnitude                             Magnitude

The integer representation is Magnitude. It keeps native int64 while the
value fits signed 64-bit range and escalates to math/big otherwise. The
escalation is a width upgrade, never an error.

# Identity triple

Time-derived identifiers are a triple ⟨𝒕, 𝒍, 𝒔⟩:

↣ ⟨𝒕⟩ timestamp, relative to the family's Epoch,

↣ ⟨𝒍⟩ spatially unique identifier of allocator (node, worker, shard),

↣ ⟨𝒔⟩ clock sequence, prevents collisions within single clock tick.

Collaborators (Clock, NodeProvider, SequenceSource, BytesGenerator,
HashFunction, DCE) are injected into generators. The Sequencer owns the clock
sequence state of one generator. When the sequence field reaches its maximum
the embedded time is advanced by a rollover counter, identifiers stay strictly
increasing under sustained same-millisecond load and backward clocks.

# Errors

Errors are matched with errors.Is against ErrInvalidArgument,
ErrInvalidLength, ErrNotComparable, ErrUnsupportedOperation and
ErrCannotDetermineVersion.
*/
package idkit
