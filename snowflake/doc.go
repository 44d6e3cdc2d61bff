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
Package snowflake implements 64-bit time ordered identifiers of Twitter,
Discord, Instagram and Mastodon flavors, and of any custom layout.

Layout splits 64 bits into timestamp, named fields and sequence:

	Twitter    | 0 | time 41 | machine 10 | sequence 12 |
	Discord    | time 42 | worker 5 | process 5 | sequence 12 |
	Instagram  | time 41 | shard 13 | sequence 10 |
	Mastodon   | time 48 | hash + sequence 16 |

ID[F] is snowflake of fixed flavor, GenericID carries its layout:

	gen, err := snowflake.New[snowflake.Discord](
		snowflake.WithWorker(1),
		snowflake.WithProcess(2),
	)

	id, err := gen.Next()
	id.Time()

Identifiers are displayed as unsigned decimal, JSON encodes them as strings
but accepts numbers as well.
*/
package snowflake
