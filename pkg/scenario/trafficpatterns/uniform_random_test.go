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
	"testing"
	"time"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"

	"vendingsim/pkg/simulator"
)

func TestUniformRandom(t *testing.T) {
	spec.Run(t, "Uniform random traffic pattern", testUniformRandom, spec.Report(report.Terminal{}))
}

func testUniformRandom(t *testing.T, describe spec.G, it spec.S) {
	var subject Pattern
	var envFake *simulator.FakeEnvironment
	var arrivals []time.Time
	var startAt time.Time
	var runFor time.Duration

	it.Before(func() {
		envFake = new(simulator.FakeEnvironment)
		envFake.TheHaltTime = envFake.TheTime.Add(10 * time.Minute)
		startAt = time.Unix(0, 1)
		runFor = time.Minute
		arrivals = nil

		arrive := func(at time.Time) error {
			arrivals = append(arrivals, at)
			return nil
		}

		subject = NewUniformRandom(envFake, arrive, rand.New(rand.NewSource(1)), UniformConfig{
			NumberOfCustomers: 100,
			StartAt:           startAt,
			RunFor:            runFor,
		})
		subject.Generate()
	})

	describe("Name()", func() {
		it("calls itself 'golang_rand_uniform'", func() {
			assert.Equal(t, "golang_rand_uniform", subject.Name())
		})
	})

	describe("Generate()", func() {
		it("schedules 100 arrivals", func() {
			assert.Len(t, envFake.Steps, 100)
		})

		it("schedules 'customer_arrives' steps", func() {
			for _, s := range envFake.Steps {
				assert.Equal(t, CustomerArrives, s.Kind())
			}
		})

		it("schedules arrivals between startAt and startAt+runFor", func() {
			for _, s := range envFake.Steps {
				assert.WithinDuration(t, startAt, s.OccursAt(), runFor)
				assert.False(t, s.OccursAt().Before(startAt))
			}
		})

		it("calls the arrival with the time of the step", func() {
			assert.NoError(t, envFake.PerformAll())
			assert.Len(t, arrivals, 100)
			assert.Equal(t, envFake.Steps[0].OccursAt(), arrivals[0])
		})

		it("is repeatable for the same seed", func() {
			again := new(simulator.FakeEnvironment)
			NewUniformRandom(again, func(time.Time) error { return nil }, rand.New(rand.NewSource(1)), UniformConfig{
				NumberOfCustomers: 100,
				StartAt:           startAt,
				RunFor:            runFor,
			}).Generate()

			for i := range again.Steps {
				assert.Equal(t, envFake.Steps[i].OccursAt(), again.Steps[i].OccursAt())
			}
		})
	})
}
