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

func TestStep(t *testing.T) {
	spec.Run(t, "Step traffic pattern", testStep, spec.Report(report.Terminal{}))
}

func testStep(t *testing.T, describe spec.G, it spec.S) {
	var subject Pattern
	var envFake *simulator.FakeEnvironment

	it.Before(func() {
		envFake = new(simulator.FakeEnvironment)
		envFake.TheTime = time.Unix(0, 0)
		envFake.TheHaltTime = envFake.TheTime.Add(5 * time.Minute)

		subject = NewStep(envFake, func(time.Time) error { return nil }, rand.New(rand.NewSource(3)), StepConfig{
			PerInterval: 2,
			StepAfter:   2 * time.Minute,
			Interval:    time.Minute,
		})
		subject.Generate()
	})

	describe("Name()", func() {
		it("calls itself 'step'", func() {
			assert.Equal(t, "step", subject.Name())
		})
	})

	describe("Generate()", func() {
		it("schedules nobody before the step", func() {
			for _, s := range envFake.Steps {
				assert.False(t, s.OccursAt().Before(envFake.TheTime.Add(2*time.Minute)))
			}
		})

		it("schedules the same number in every interval after the step", func() {
			assert.Len(t, envFake.Steps, 6)
		})

		it("schedules customer arrivals", func() {
			for _, s := range envFake.Steps {
				assert.Equal(t, CustomerArrives, s.Kind())
			}
		})
	})
}
