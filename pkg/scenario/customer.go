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
	"fmt"
	"math/rand"
	"sort"
	"time"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
)

const DefaultPace = 2 * time.Second

// Customer buys one pop per visit: a random selection, paid for with
// whatever coins make up the price, then the chute is opened.
type Customer struct {
	env     simulator.Environment
	machine *hardware.VendingMachine
	rng     *rand.Rand
	pace    time.Duration
	visits  int
}

func (c *Customer) Arrive(at time.Time) error {
	c.visits++
	note := fmt.Sprintf("customer %d", c.visits)

	selection := c.rng.Intn(c.machine.NumberOfSelectionButtons())
	cost := c.machine.PopKindCost(selection)

	specs := make([]StepSpec, 0)
	for _, value := range PayFor(cost, c.machine.CoinSlot().AcceptedDenominations()) {
		specs = append(specs, StepSpec{Action: InsertCoin, Value: value})
	}
	specs = append(specs, StepSpec{Action: PressButton, Index: selection}, StepSpec{Action: OpenChute})

	t := at
	for _, spec := range specs {
		t = t.Add(c.pace)
		step, err := spec.Step(c.machine, t)
		if err != nil {
			return err
		}
		step.AddNote(note)
		c.env.AddToSchedule(step)
	}

	return nil
}

func NewCustomer(env simulator.Environment, machine *hardware.VendingMachine, rng *rand.Rand, pace time.Duration) *Customer {
	if pace <= 0 {
		pace = DefaultPace
	}
	return &Customer{
		env:     env,
		machine: machine,
		rng:     rng,
		pace:    pace,
	}
}

// PayFor picks coins largest first until cost is covered. When the
// remainder is smaller than every coin it overpays with the smallest.
func PayFor(cost int, denominations []int) []int {
	if len(denominations) == 0 {
		return nil
	}

	sorted := append([]int(nil), denominations...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	paid := make([]int, 0)
	remaining := cost
	for remaining > 0 {
		next := sorted[len(sorted)-1]
		for _, d := range sorted {
			if d <= remaining {
				next = d
				break
			}
		}
		paid = append(paid, next)
		remaining -= next
	}

	return paid
}
