/*
 * Copyright (C) 2019-Present Pivotal Software, Inc. All rights reserved.
 *
 * This program and the accompanying materials are made available under the terms
 * of the Apache License, Version 2.0 (the "License”); you may not use this file
 * except in compliance with the License. You may obtain a copy of the License at:
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed
 * under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR
 * CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 */

package simulator

import "time"

type StepKind string

type Annotateable interface {
	Notes() []string
	AddNote(note string)
}

type coreStep interface {
	Kind() StepKind
	OccursAt() time.Time
	Perform() error
}

// Step is one externally driven operation on the simulated machine, such as
// inserting a coin or opening the delivery chute, scheduled at a point in time.
type Step interface {
	coreStep
	Annotateable
}

type step struct {
	kind     StepKind
	occursAt time.Time
	perform  func() error
	notes    []string
}

func (s *step) Kind() StepKind {
	return s.kind
}

func (s *step) OccursAt() time.Time {
	return s.occursAt
}

func (s *step) Perform() error {
	if s.perform == nil {
		return nil
	}
	return s.perform()
}

func (s *step) Notes() []string {
	return s.notes
}

func (s *step) AddNote(note string) {
	s.notes = append(s.notes, note)
}

func NewStep(kind StepKind, occursAt time.Time, perform func() error) Step {
	return &step{
		kind:     kind,
		occursAt: occursAt,
		perform:  perform,
		notes:    make([]string, 0),
	}
}

// shiftedStep keeps the identity of a step that had to be moved off an
// instant already taken by another step.
type shiftedStep struct {
	Step
	occursAt time.Time
}

func (ss *shiftedStep) OccursAt() time.Time {
	return ss.occursAt
}
