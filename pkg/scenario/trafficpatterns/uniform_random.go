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

type uniformRandom struct {
	env               simulator.Environment
	arrive            Arrival
	rng               *rand.Rand
	numberOfCustomers int
	startAt           time.Time
	runFor            time.Duration
}

type UniformConfig struct {
	NumberOfCustomers int
	StartAt           time.Time
	RunFor            time.Duration
}

func (ur *uniformRandom) Name() string {
	return "golang_rand_uniform"
}

func (ur *uniformRandom) Generate() {
	if ur.runFor <= 0 {
		return
	}

	for i := 0; i < ur.numberOfCustomers; i++ {
		r := ur.rng.Int63n(ur.runFor.Nanoseconds())
		scheduleArrival(ur.env, ur.startAt.Add(time.Duration(r)*time.Nanosecond), ur.arrive)
	}
}

func NewUniformRandom(env simulator.Environment, arrive Arrival, rng *rand.Rand, config UniformConfig) Pattern {
	return &uniformRandom{
		env:               env,
		arrive:            arrive,
		rng:               rng,
		numberOfCustomers: config.NumberOfCustomers,
		startAt:           config.StartAt,
		runFor:            config.RunFor,
	}
}
