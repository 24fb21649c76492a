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

package logger

import (
	"errors"
	"fmt"

	"dirpx.dev/qlog/apis"
)

var (
	// ErrNilOwner is returned when Add is called with a nil owner.
	ErrNilOwner = errors.New("qlog(logger): nil owner")
	// ErrInvalidValue indicates a direct path assignment whose value is not
	// exactly an (owner, quantity) pair, or an owner-declared accessor that
	// was not constructed with Invoke or Read.
	ErrInvalidValue = errors.New("qlog(logger): value is not a valid (owner, quantity) pair")
	// ErrCandidatesExhausted indicates that every candidate path up to the
	// configured MaxCandidates cap was unavailable.
	ErrCandidatesExhausted = errors.New("qlog(logger): disambiguation candidates exhausted")
	// ErrCorruptState indicates the namespace tree no longer matches the
	// registration scheme: a candidate path that must hold a claimed entry
	// holds a subtree instead. The logger has been corrupted by an external
	// mutation and further use is undefined.
	ErrCorruptState = errors.New("qlog(logger): registry in undefined state")
)

// UnknownQuantityError reports every requested quantity name the owner does
// not declare, in one error rather than one at a time.
type UnknownQuantityError struct {
	// Owner is the owner the names were checked against.
	Owner apis.Loggable
	// Names holds all names not declared by Owner.
	Names []string
}

func (e *UnknownQuantityError) Error() string {
	return fmt.Sprintf("qlog(logger): quantities %v do not exist for %T", e.Names, e.Owner)
}
