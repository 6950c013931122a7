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

// step is a rush: nobody comes until stepAfter, then perInterval customers
// arrive in every interval until the scenario halts.
type step struct {
	env         simulator.Environment
	arrive      Arrival
	rng         *rand.Rand
	perInterval int
	stepAfter   time.Duration
	interval    time.Duration
}

type StepConfig struct {
	PerInterval int
	StepAfter   time.Duration
	Interval    time.Duration
}

func (*step) Name() string {
	return "step"
}

func (s *step) Generate() {
	if s.interval <= 0 {
		return
	}

	var t time.Time
	startAt := s.env.CurrentStepTime().Add(s.stepAfter)

	for t = startAt; t.Before(s.env.HaltTime()); t = t.Add(s.interval) {
		NewUniformRandom(s.env, s.arrive, s.rng, UniformConfig{
			NumberOfCustomers: s.perInterval,
			StartAt:           t,
			RunFor:            s.interval,
		}).Generate()
	}
}

func NewStep(env simulator.Environment, arrive Arrival, rng *rand.Rand, config StepConfig) Pattern {
	return &step{
		env:         env,
		arrive:      arrive,
		rng:         rng,
		perInterval: config.PerInterval,
		stepAfter:   config.StepAfter,
		interval:    config.Interval,
	}
}
