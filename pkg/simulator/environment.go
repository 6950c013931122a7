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
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"vendingsim/pkg/logging"
)

const (
	OccursInPast     = "ScheduledToOccurInPast"
	OccursAfterHalt  = "ScheduledToOccurAfterHalt"
	ScheduleClosed   = "ScheduleAlreadyClosed"
	DeviceDisabled   = "DeviceDisabled"
	CapacityExceeded = "CapacityExceeded"
	StockEmpty       = "StockEmpty"
)

const (
	StateBeforeScenario  = "BeforeScenario"
	StateRunningScenario = "RunningScenario"
	StateHaltedScenario  = "HaltedScenario"

	startScenario StepKind = "start_scenario"
	haltScenario  StepKind = "halt_scenario"
)

type Environment interface {
	AddToSchedule(step Step) (added bool)
	Run() (completed []CompletedStep, ignored []IgnoredStep, err error)
	CurrentStepTime() time.Time
	HaltTime() time.Time
	Context() context.Context
}

type CompletedStep struct {
	Step Step
}

type IgnoredStep struct {
	Step   Step
	Reason string
	Err    error
}

type environment struct {
	ctx    context.Context
	logger *zap.SugaredLogger

	simulationTime time.Time
	haltTime       time.Time

	futureSteps StepPriorityQueue
	completed   []CompletedStep
	ignored     []IgnoredStep
	lifecycle   *fsm.FSM
}

func (env *environment) AddToSchedule(step Step) (added bool) {
	occursAfterCurrent := step.OccursAt().After(env.simulationTime)
	occursBeforeHalt := step.OccursAt().Before(env.haltTime)
	closed := env.futureSteps.IsClosed()
	schedulable := occursAfterCurrent && occursBeforeHalt && !closed

	if schedulable {
		shifted, at, err := env.futureSteps.EnqueueStep(step)
		if err != nil {
			panic(fmt.Errorf("could not add '%#v' to future steps: %s", step, err.Error()))
		}
		if shifted {
			step.AddNote(fmt.Sprintf("shifted to %d to avoid a collision", at.UnixNano()))
		}
	} else if !occursAfterCurrent {
		env.ignore(step, OccursInPast, nil)
	} else if !occursBeforeHalt {
		env.ignore(step, OccursAfterHalt, nil)
	} else {
		env.ignore(step, ScheduleClosed, nil)
	}

	return schedulable
}

func (env *environment) Run() (completed []CompletedStep, ignored []IgnoredStep, err error) {
	for {
		if err := env.ctx.Err(); err != nil {
			return env.completed, env.ignored, err
		}

		next, err, closed := env.futureSteps.DequeueStep()
		if closed {
			break
		} else if err != nil {
			return env.completed, env.ignored, err
		}

		env.simulationTime = next.OccursAt()

		err = next.Perform()
		if err == nil {
			env.completed = append(env.completed, CompletedStep{Step: next})
			continue
		}

		reason, recoverable := classify(err)
		if !recoverable {
			env.logger.Errorw("step failed, halting", "kind", next.Kind(), "at", next.OccursAt().UnixNano(), "error", err)
			return env.completed, env.ignored, fmt.Errorf("step '%s' at %d failed: %w", next.Kind(), next.OccursAt().UnixNano(), err)
		}

		env.logger.Debugw("step ignored", "kind", next.Kind(), "reason", reason, "error", err)
		env.ignore(next, reason, err)
	}

	return env.completed, env.ignored, nil
}

func (env *environment) CurrentStepTime() time.Time {
	return env.simulationTime
}

func (env *environment) HaltTime() time.Time {
	return env.haltTime
}

func (env *environment) Context() context.Context {
	return env.ctx
}

func (env *environment) ignore(step Step, reason string, err error) {
	env.ignored = append(env.ignored, IgnoredStep{
		Step:   step,
		Reason: reason,
		Err:    err,
	})
}

func (env *environment) startScenario() error {
	return env.lifecycle.Event(env.ctx, string(startScenario))
}

func (env *environment) haltScenario() error {
	defer env.futureSteps.Close()
	return env.lifecycle.Event(env.ctx, string(haltScenario))
}

// classify maps the recoverable error kinds onto ignore reasons.
func classify(err error) (reason string, recoverable bool) {
	switch {
	case errors.Is(err, ErrSimulation):
		return "", false
	case errors.Is(err, ErrDisabled):
		return DeviceDisabled, true
	case errors.Is(err, ErrCapacityExceeded):
		return CapacityExceeded, true
	case errors.Is(err, ErrEmpty):
		return StockEmpty, true
	default:
		return "", false
	}
}

func NewEnvironment(ctx context.Context, startAt time.Time, runFor time.Duration) Environment {
	env := &environment{
		ctx:            ctx,
		logger:         logging.FromContext(ctx).Named("environment"),
		simulationTime: startAt,
		haltTime:       startAt.Add(runFor),
		futureSteps:    NewStepPriorityQueue(),
		completed:      make([]CompletedStep, 0),
		ignored:        make([]IgnoredStep, 0),
	}

	env.lifecycle = fsm.NewFSM(
		StateBeforeScenario,
		fsm.Events{
			{Name: string(startScenario), Src: []string{StateBeforeScenario}, Dst: StateRunningScenario},
			{Name: string(haltScenario), Src: []string{StateRunningScenario}, Dst: StateHaltedScenario},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				env.logger.Debugw("scenario state changed", "from", e.Src, "to", e.Dst)
			},
		},
	)

	start := NewStep(startScenario, startAt, env.startScenario)
	start.AddNote("Start scenario")
	halt := NewStep(haltScenario, env.haltTime, env.haltScenario)
	halt.AddNote("Halt scenario")

	// Bypass AddToSchedule: both sit on the boundaries it excludes.
	for _, s := range []Step{start, halt} {
		if _, _, err := env.futureSteps.EnqueueStep(s); err != nil {
			panic(fmt.Errorf("could not schedule '%s': %s", s.Kind(), err.Error()))
		}
	}

	return env
}
