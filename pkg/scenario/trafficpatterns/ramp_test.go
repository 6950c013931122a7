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

func TestRamp(t *testing.T) {
	spec.Run(t, "Ramp traffic pattern", testRamp, spec.Report(report.Terminal{}))
}

func testRamp(t *testing.T, describe spec.G, it spec.S) {
	var subject Pattern
	var envFake *simulator.FakeEnvironment

	it.Before(func() {
		envFake = new(simulator.FakeEnvironment)
		envFake.TheTime = time.Unix(0, 0)
		envFake.TheHaltTime = envFake.TheTime.Add(time.Hour)

		subject = NewRamp(envFake, func(time.Time) error { return nil }, rand.New(rand.NewSource(7)), RampConfig{
			DeltaV:         1,
			MaxPerInterval: 3,
			Interval:       time.Minute,
		})
		subject.Generate()
	})

	describe("Name()", func() {
		it("calls itself 'ramp'", func() {
			assert.Equal(t, "ramp", subject.Name())
		})
	})

	describe("Generate()", func() {
		countIn := func(minute int) int {
			from := envFake.TheTime.Add(time.Duration(minute) * time.Minute)
			to := from.Add(time.Minute)
			n := 0
			for _, s := range envFake.Steps {
				if !s.OccursAt().Before(from) && s.OccursAt().Before(to) {
					n++
				}
			}
			return n
		}

		it("ramps up by 1 per minute to the maximum", func() {
			assert.Equal(t, 1, countIn(0))
			assert.Equal(t, 2, countIn(1))
			assert.Equal(t, 3, countIn(2))
		})

		it("ramps back down again", func() {
			assert.Equal(t, 3, countIn(3))
			assert.Equal(t, 2, countIn(4))
			assert.Equal(t, 1, countIn(5))
			assert.Equal(t, 0, countIn(6))
		})

		it("schedules 12 arrivals in total", func() {
			assert.Len(t, envFake.Steps, 12)
		})
	})

	describe("a zero interval", func() {
		it("schedules nothing", func() {
			empty := new(simulator.FakeEnvironment)
			NewRamp(empty, func(time.Time) error { return nil }, rand.New(rand.NewSource(7)), RampConfig{DeltaV: 1, MaxPerInterval: 3}).Generate()
			assert.Empty(t, empty.Steps)
		})
	})
}
