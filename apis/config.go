/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Config carries read-only knobs that influence owner identification and
// quantity registration. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when deriving an owner's defining type via reflection. Acts as a safety
	// guard against pathological nesting.
	MaxUnwrap int

	// MaxCandidates bounds the disambiguation index scanned when claiming a
	// path for an owner's quantity. Candidate generation is infinite; this cap
	// turns a pathological registration pattern into a reported error instead
	// of an unbounded loop.
	MaxCandidates int
}
