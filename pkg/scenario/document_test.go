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
	"errors"
	"testing"
	"time"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingsim/pkg/simulator"
)

func TestDocument(t *testing.T) {
	spec.Run(t, "Scenario documents", testDocument, spec.Report(report.Terminal{}))
}

func testDocument(t *testing.T, describe spec.G, it spec.S) {
	describe("Parse()", func() {
		describe("a complete document", func() {
			var doc *Document

			it.Before(func() {
				var err error
				doc, err = Parse([]byte(`
name: ramping
duration: 30m
machine:
  coinKinds: [5, 10, 25]
  selectionButtonCount: 2
  coinRackCapacity: 20
  popCanRackCapacity: 4
  receptacleCapacity: 15
products:
  - {name: Coke, cost: 35}
  - {name: Water, cost: 10}
stock:
  coins: [3, 3, 3]
  popCans: [4, 1]
customers:
  pattern: ramp
  deltaV: 2
  maxPerInterval: 6
  interval: 1m
  seed: 42
steps:
  - {at: 90s, action: insert_coin, value: 25}
  - {at: 2m, action: disable, device: Display}
`))
				require.NoError(t, err)
			})

			it("reads the name and duration", func() {
				assert.Equal(t, "ramping", doc.Name)
				assert.Equal(t, 30*time.Minute, doc.Duration)
			})

			it("reads the machine configuration", func() {
				assert.Equal(t, []int{5, 10, 25}, doc.Machine.CoinKinds)
				assert.Equal(t, 2, doc.Machine.SelectionButtonCount)
				assert.Equal(t, 15, doc.Machine.ReceptacleCapacity)
			})

			it("reads the products and stock", func() {
				assert.Equal(t, []Product{{Name: "Coke", Cost: 35}, {Name: "Water", Cost: 10}}, doc.Products)
				assert.Equal(t, []int{4, 1}, doc.Stock.PopCans)
			})

			it("reads the customer pattern", func() {
				require.NotNil(t, doc.Customers)
				assert.Equal(t, RampPattern, doc.Customers.Pattern)
				assert.Equal(t, time.Minute, doc.Customers.Interval)
				assert.Equal(t, int64(42), doc.Customers.Seed)
			})

			it("reads the steps", func() {
				require.Len(t, doc.Steps, 2)
				assert.Equal(t, StepSpec{At: 90 * time.Second, Action: InsertCoin, Value: 25}, doc.Steps[0])
				assert.Equal(t, "Display", doc.Steps[1].Device)
			})
		})

		describe("a document with an unknown field", func() {
			it("is rejected", func() {
				_, err := Parse([]byte("name: x\nduration: 1m\ncolour: red\n"))
				require.Error(t, err)
				assert.True(t, errors.Is(err, simulator.ErrSimulation))
			})
		})

		describe("a document with several problems", func() {
			it("reports all of them", func() {
				_, err := Parse([]byte(`
name: broken
duration: 0s
machine:
  coinKinds: [5]
  selectionButtonCount: 1
  coinRackCapacity: 1
  popCanRackCapacity: 1
  receptacleCapacity: 1
products:
  - {name: A, cost: 5}
  - {name: B, cost: 5}
customers:
  pattern: sometimes
steps:
  - {at: 1s, action: kick_machine}
`))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "duration must be positive")
				assert.Contains(t, err.Error(), "2 products for 1 selection buttons")
				assert.Contains(t, err.Error(), "unknown customer pattern 'sometimes'")
				assert.Contains(t, err.Error(), "unknown action 'kick_machine'")
			})
		})
	})

	describe("DefaultDocument()", func() {
		it("is valid", func() {
			doc := DefaultDocument()
			assert.NoError(t, doc.Validate())
			assert.Equal(t, "default", doc.Name)
			assert.Equal(t, 10*time.Minute, doc.Duration)
		})

		it("returns an independent copy each time", func() {
			first := DefaultDocument()
			first.Name = "changed"
			assert.Equal(t, "default", DefaultDocument().Name)
		})
	})

	describe("Load()", func() {
		it("fails for a missing file", func() {
			_, err := Load("no-such-scenario.yaml")
			assert.Error(t, err)
		})
	})
}
