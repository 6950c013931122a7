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

import (
	"context"
	"fmt"
	"time"
)

// FakeEnvironment records scheduled steps without running them.
type FakeEnvironment struct {
	Steps       []Step
	TheTime     time.Time
	TheHaltTime time.Time
	TheContext  context.Context
}

func (fe *FakeEnvironment) AddToSchedule(step Step) (added bool) {
	fe.Steps = append(fe.Steps, step)
	return true
}

func (fe *FakeEnvironment) Run() (completed []CompletedStep, ignored []IgnoredStep, err error) {
	return nil, nil, nil
}

func (fe *FakeEnvironment) CurrentStepTime() time.Time {
	return fe.TheTime
}

func (fe *FakeEnvironment) HaltTime() time.Time {
	return fe.TheHaltTime
}

func (fe *FakeEnvironment) Context() context.Context {
	if fe.TheContext == nil {
		return context.Background()
	}
	return fe.TheContext
}

// PerformAll performs every recorded step in the order it was scheduled.
func (fe *FakeEnvironment) PerformAll() error {
	for _, s := range fe.Steps {
		if err := s.Perform(); err != nil {
			return fmt.Errorf("step '%s' failed: %w", s.Kind(), err)
		}
	}
	return nil
}

// FakeEntity is a minimal Entity for exercising stocks.
type FakeEntity struct {
	TheName EntityName
	TheKind EntityKind
}

func (fe *FakeEntity) Name() EntityName {
	return fe.TheName
}

func (fe *FakeEntity) Kind() EntityKind {
	return fe.TheKind
}

func NewFakeEntity(name EntityName, kind EntityKind) Entity {
	return &FakeEntity{TheName: name, TheKind: kind}
}
