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
	"errors"
	"testing"
	"time"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
	"vendingsim/pkg/trace"
)

func TestRun(t *testing.T) {
	spec.Run(t, "Running scenarios", testRun, spec.Report(report.Terminal{}))
}

func testRun(t *testing.T, describe spec.G, it spec.S) {
	var doc *Document

	it.Before(func() {
		doc = &Document{
			Name:     "one sale",
			Duration: time.Minute,
			Machine: hardware.Config{
				CoinKinds:            []int{5, 10, 25, 100, 200},
				SelectionButtonCount: 1,
				CoinRackCapacity:     10,
				PopCanRackCapacity:   5,
				ReceptacleCapacity:   10,
			},
			Products: []Product{{Name: "Coke", Cost: 250}},
			Stock:    Stock{PopCans: []int{2}},
			Steps: []StepSpec{
				{At: 1 * time.Second, Action: InsertCoin, Value: 200},
				{At: 2 * time.Second, Action: InsertCoin, Value: 25},
				{At: 3 * time.Second, Action: InsertCoin, Value: 25},
				{At: 4 * time.Second, Action: PressButton, Index: 0},
				{At: 5 * time.Second, Action: OpenChute},
			},
		}
	})

	describe("a scripted sale", func() {
		var result *Result

		it.Before(func() {
			var err error
			result, err = Run(context.Background(), doc)
			require.NoError(t, err)
		})

		it("completes every step between start and halt", func() {
			assert.Len(t, result.Completed, 7)
			assert.Empty(t, result.Ignored)
		})

		it("describes the run", func() {
			assert.Equal(t, "one sale", result.Name)
			assert.Equal(t, time.Minute, result.RanFor)
			assert.Equal(t, "none", result.TrafficPattern)
			assert.NotEmpty(t, result.UID.String())
		})

		it("sells one can", func() {
			require.Len(t, result.Contents.UnsoldPopCans, 1)
			assert.Len(t, result.Contents.UnsoldPopCans[0], 1)
			assert.Equal(t, 0, result.Balance)
		})

		it("stores the payment in the coin racks", func() {
			assert.Len(t, result.Contents.UnusedCoinsForChange[2], 2)
			assert.Len(t, result.Contents.UnusedCoinsForChange[4], 1)
			assert.Empty(t, result.Contents.PaymentCoinsInStorageBin)
		})

		it("traces the delivery at the time it happened", func() {
			var delivered, opened *trace.Event
			for i, e := range result.Events {
				if e.Device == "DeliveryChute" && e.Name == "itemDelivered" {
					delivered = &result.Events[i]
				}
				if e.Device == "DeliveryChute" && e.Name == "doorOpened" {
					opened = &result.Events[i]
				}
			}
			require.NotNil(t, delivered)
			require.NotNil(t, opened)
			assert.Equal(t, StartAt.Add(4*time.Second), delivered.OccursAt)
			assert.Equal(t, StartAt.Add(5*time.Second), opened.OccursAt)
		})
	})

	describe("the machine is out of order for a while", func() {
		it.Before(func() {
			doc.Steps = append(doc.Steps,
				StepSpec{At: 10 * time.Second, Action: EnableSafety},
				StepSpec{At: 11 * time.Second, Action: InsertCoin, Value: 25},
				StepSpec{At: 12 * time.Second, Action: DisableSafety},
			)
		})

		it("ignores the coin inserted while disabled", func() {
			result, err := Run(context.Background(), doc)
			require.NoError(t, err)
			require.Len(t, result.Ignored, 1)
			assert.Equal(t, simulator.DeviceDisabled, result.Ignored[0].Reason)
		})
	})

	describe("a step cannot be simulated", func() {
		it.Before(func() {
			doc.Steps = append(doc.Steps, StepSpec{At: 30 * time.Second, Action: InsertCoin, Value: -5})
		})

		it("returns what ran so far together with the error", func() {
			result, err := Run(context.Background(), doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, simulator.ErrSimulation))
			require.NotNil(t, result)
			assert.Len(t, result.Completed, 6)
		})
	})

	describe("customers arrive", func() {
		it.Before(func() {
			doc.Steps = nil
			doc.Stock = Stock{PopCans: []int{5}}
			doc.Duration = time.Hour
			doc.Customers = &Customers{Pattern: UniformPattern, Count: 3, Seed: 11}
		})

		it("sells to each of them", func() {
			result, err := Run(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, "golang_rand_uniform", result.TrafficPattern)
			assert.Len(t, result.Contents.UnsoldPopCans[0], 2)

			arrivals := 0
			for _, c := range result.Completed {
				if c.Step.Kind() == "customer_arrives" {
					arrivals++
				}
			}
			assert.Equal(t, 3, arrivals)
		})
	})

	describe("a rush of customers", func() {
		it.Before(func() {
			doc.Steps = nil
			doc.Stock = Stock{PopCans: []int{5}}
			doc.Duration = time.Hour
			doc.Customers = &Customers{Pattern: StepPattern, PerInterval: 1, StepAfter: 30 * time.Minute, Interval: 10 * time.Minute, Seed: 4}
		})

		it("only arrives after the step", func() {
			result, err := Run(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, "step", result.TrafficPattern)

			arrivals := 0
			for _, c := range result.Completed {
				if c.Step.Kind() == "customer_arrives" {
					arrivals++
					assert.False(t, c.Step.OccursAt().Before(StartAt.Add(30*time.Minute)))
				}
			}
			assert.Equal(t, 3, arrivals)
		})
	})

	describe("an invalid document", func() {
		it("is rejected before running", func() {
			doc.Duration = 0
			result, err := Run(context.Background(), doc)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	})
}
