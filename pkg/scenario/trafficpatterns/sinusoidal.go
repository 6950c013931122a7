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
	"math"
	"math/rand"
	"time"

	"vendingsim/pkg/simulator"
)

type sinusoidal struct {
	env       simulator.Environment
	arrive    Arrival
	rng       *rand.Rand
	amplitude int
	period    time.Duration
	interval  time.Duration
}

type SinusoidalConfig struct {
	Amplitude int
	Period    time.Duration
	Interval  time.Duration
}

func (*sinusoidal) Name() string {
	return "sinusoidal"
}

// Generate varies the customers per interval between 0 and twice the
// amplitude, starting at the midpoint.
func (s *sinusoidal) Generate() {
	if s.interval <= 0 || s.period <= 0 {
		return
	}

	var t time.Time
	startAt := s.env.CurrentStepTime()
	twoPi := 2.0 * math.Pi
	for t = startAt; t.Before(s.env.HaltTime()); t = t.Add(s.interval) {
		ampl := float64(s.amplitude)
		perd := s.period.Seconds()
		tsec := t.Sub(startAt).Seconds()

		perInterval := ampl*math.Sin(twoPi*(tsec/perd)) + ampl
		rounded := int(math.Round(perInterval))

		NewUniformRandom(s.env, s.arrive, s.rng, UniformConfig{
			NumberOfCustomers: rounded,
			StartAt:           t,
			RunFor:            s.interval,
		}).Generate()
	}
}

func NewSinusoidal(env simulator.Environment, arrive Arrival, rng *rand.Rand, config SinusoidalConfig) Pattern {
	return &sinusoidal{
		env:       env,
		arrive:    arrive,
		rng:       rng,
		amplitude: config.Amplitude,
		period:    config.Period,
		interval:  config.Interval,
	}
}
