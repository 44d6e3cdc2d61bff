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
Package uuid implements RFC 9562 universally unique identifiers.

UUID is untyped value, it holds anything of 16 bytes including Nil, Max and
nonstandard values. Typed[K] fixes version and variant, its constructors
refuse values of other versions:

	u, err := uuid.FromStringAs[uuid.V4]("...")

GUID is the same value in Microsoft byte order.

Generator produces time-based (1, 2, 6, 7), random (4) and name-based (3, 5)
identifiers. Its collaborators (clock, node, clock sequence, random bytes,
hash functions, DCE) are configured with options:

	gen := uuid.NewGenerator(
		uuid.WithClock(idkit.FrozenClock(t)),
		uuid.WithNode(idkit.StaticNode("0123456789ab")),
	)

	a, err := gen.V7()
*/
package uuid
