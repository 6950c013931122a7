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

package trafficpatterns

import (
	"math/rand"
	"time"

	"vendingsim/pkg/simulator"
)

// ramp raises the number of customers per interval by deltaV until it
// reaches maxPerInterval, then lowers it again by the same steps.
type ramp struct {
	env            simulator.Environment
	arrive         Arrival
	rng            *rand.Rand
	deltaV         int
	maxPerInterval int
	interval       time.Duration
}

type RampConfig struct {
	DeltaV         int
	MaxPerInterval int
	Interval       time.Duration
}

func (*ramp) Name() string {
	return "ramp"
}

func (r *ramp) Generate() {
	if r.deltaV <= 0 || r.interval <= 0 {
		return
	}

	var t time.Time
	next := r.deltaV
	startAt := r.env.CurrentStepTime()

	for t = startAt; next <= r.maxPerInterval; t = t.Add(r.interval) {
		r.uniform(t, next)
		next = next + r.deltaV
	}

	for ; next > 0; t = t.Add(r.interval) {
		next = next - r.deltaV
		r.uniform(t, next)
	}
}

func (r *ramp) uniform(startAt time.Time, customers int) {
	NewUniformRandom(r.env, r.arrive, r.rng, UniformConfig{
		NumberOfCustomers: customers,
		StartAt:           startAt,
		RunFor:            r.interval,
	}).Generate()
}

func NewRamp(env simulator.Environment, arrive Arrival, rng *rand.Rand, config RampConfig) Pattern {
	return &ramp{
		env:            env,
		arrive:         arrive,
		rng:            rng,
		deltaV:         config.DeltaV,
		maxPerInterval: config.MaxPerInterval,
		interval:       config.Interval,
	}
}
