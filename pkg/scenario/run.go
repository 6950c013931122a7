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

package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"vendingsim/pkg/controller"
	"vendingsim/pkg/hardware"
	"vendingsim/pkg/logging"
	"vendingsim/pkg/scenario/trafficpatterns"
	"vendingsim/pkg/simulator"
	"vendingsim/pkg/trace"
)

var StartAt = time.Unix(0, 0)

type Result struct {
	UID            uuid.UUID                 `json:"uid"`
	Name           string                    `json:"name"`
	RanFor         time.Duration             `json:"ranFor"`
	Config         hardware.Config           `json:"config"`
	TrafficPattern string                    `json:"trafficPattern"`
	Completed      []simulator.CompletedStep `json:"-"`
	Ignored        []simulator.IgnoredStep   `json:"-"`
	Events         []trace.Event             `json:"events"`
	Contents       hardware.StoredContents   `json:"contents"`
	Balance        int                       `json:"balance"`
}

// Run builds a fresh machine for the document and runs the scenario to its
// halt time. A result is returned whenever the run got started, even if it
// stopped on an error.
func Run(ctx context.Context, doc *Document) (*Result, error) {
	logger := logging.FromContext(ctx).Named("scenario")

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario '%s': %w", doc.Name, err)
	}

	machine, err := hardware.NewVendingMachine(doc.Machine)
	if err != nil {
		return nil, err
	}

	if len(doc.Products) > 0 {
		names := make([]string, 0, len(doc.Products))
		costs := make([]int, 0, len(doc.Products))
		for _, p := range doc.Products {
			names = append(names, p.Name)
			costs = append(costs, p.Cost)
		}
		if err := machine.Configure(names, costs); err != nil {
			return nil, fmt.Errorf("could not configure products: %w", err)
		}
	}

	env := simulator.NewEnvironment(ctx, StartAt, doc.Duration)
	recorder := trace.NewRecorder(env)
	recorder.Attach(machine)
	ctrl := controller.New(ctx, machine)

	if len(doc.Stock.Coins) > 0 {
		if err := machine.LoadCoins(doc.Stock.Coins...); err != nil {
			return nil, fmt.Errorf("could not stock coins: %w", err)
		}
	}
	if len(doc.Stock.PopCans) > 0 {
		if err := machine.LoadPopCans(doc.Stock.PopCans...); err != nil {
			return nil, fmt.Errorf("could not stock pop cans: %w", err)
		}
	}

	for i, spec := range doc.Steps {
		step, err := spec.Step(machine, StartAt)
		if err != nil {
			return nil, fmt.Errorf("could not build step %d: %w", i, err)
		}
		env.AddToSchedule(step)
	}

	pattern := "none"
	if doc.Customers != nil {
		traffic := newTraffic(env, machine, doc.Customers)
		traffic.Generate()
		pattern = traffic.Name()
	}

	logger.Infow("running scenario", "name", doc.Name, "duration", doc.Duration, "traffic", pattern)
	completed, ignored, runErr := env.Run()

	result := &Result{
		UID:            uuid.New(),
		Name:           doc.Name,
		RanFor:         doc.Duration,
		Config:         machine.Config(),
		TrafficPattern: pattern,
		Completed:      completed,
		Ignored:        ignored,
		Events:         recorder.Events(),
		Contents:       machine.StoredContents(),
		Balance:        ctrl.Balance(),
	}

	if runErr != nil {
		logger.Errorw("scenario stopped", "name", doc.Name, "error", runErr)
		return result, runErr
	}

	logger.Infow("scenario finished", "name", doc.Name, "completed", len(completed), "ignored", len(ignored), "events", len(result.Events))
	return result, nil
}

func newTraffic(env simulator.Environment, machine *hardware.VendingMachine, c *Customers) trafficpatterns.Pattern {
	rng := rand.New(rand.NewSource(c.Seed))
	customer := NewCustomer(env, machine, rng, c.Pace)

	switch c.Pattern {
	case RampPattern:
		return trafficpatterns.NewRamp(env, customer.Arrive, rng, trafficpatterns.RampConfig{
			DeltaV:         c.DeltaV,
			MaxPerInterval: c.MaxPerInterval,
			Interval:       c.Interval,
		})
	case StepPattern:
		return trafficpatterns.NewStep(env, customer.Arrive, rng, trafficpatterns.StepConfig{
			PerInterval: c.PerInterval,
			StepAfter:   c.StepAfter,
			Interval:    c.Interval,
		})
	case SinusoidalPattern:
		return trafficpatterns.NewSinusoidal(env, customer.Arrive, rng, trafficpatterns.SinusoidalConfig{
			Amplitude: c.Amplitude,
			Period:    c.Period,
			Interval:  c.Interval,
		})
	}

	return trafficpatterns.NewUniformRandom(env, customer.Arrive, rng, trafficpatterns.UniformConfig{
		NumberOfCustomers: c.Count,
		StartAt:           env.CurrentStepTime(),
		RunFor:            env.HaltTime().Sub(env.CurrentStepTime()),
	})
}
