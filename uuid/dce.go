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

package uuid

import "strconv"

// Domain of DCE Security local identifier
type Domain byte

const (
	DomainPerson Domain = 0
	DomainGroup  Domain = 1
	DomainOrg    Domain = 2
)

func (d Domain) String() string {
	switch d {
	case DomainPerson:
		return "person"
	case DomainGroup:
		return "group"
	case DomainOrg:
		return "org"
	default:
		return "domain(" + strconv.Itoa(int(d)) + ")"
	}
}
