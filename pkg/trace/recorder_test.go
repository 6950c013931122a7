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

package trace

import (
	"testing"
	"time"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
)

func TestRecorder(t *testing.T) {
	spec.Run(t, "Recorder", testRecorder, spec.Report(report.Terminal{}))
}

func testRecorder(t *testing.T, describe spec.G, it spec.S) {
	var subject *Recorder
	var env *simulator.FakeEnvironment
	var machine *hardware.VendingMachine

	it.Before(func() {
		var err error
		machine, err = hardware.NewVendingMachine(hardware.Config{
			CoinKinds:            []int{5, 25},
			SelectionButtonCount: 1,
			CoinRackCapacity:     2,
			PopCanRackCapacity:   1,
			ReceptacleCapacity:   3,
		})
		require.NoError(t, err)

		env = &simulator.FakeEnvironment{TheTime: time.Unix(0, 1234)}
		subject = NewRecorder(env)
		subject.Attach(machine)
	})

	it("starts with no events", func() {
		assert.Empty(t, subject.Events())
	})

	it("stamps events with the current simulated time", func() {
		require.NoError(t, machine.InsertCoin(25))

		env.TheTime = time.Unix(0, 5678)
		require.NoError(t, machine.InsertCoin(50))

		assert.Equal(t, []Event{
			{OccursAt: time.Unix(0, 1234), Device: "CoinReceptacle", Name: "coinAdded", Detail: "25"},
			{OccursAt: time.Unix(0, 1234), Device: "CoinSlot", Name: "validCoinInserted", Detail: "25"},
			{OccursAt: time.Unix(0, 5678), Device: "DeliveryChute", Name: "itemDelivered", Detail: "Coin 50"},
			{OccursAt: time.Unix(0, 5678), Device: "CoinSlot", Name: "coinRejected", Detail: "50"},
		}, subject.Events())
	})

	it("hears the pop can racks and the chute door", func() {
		require.NoError(t, machine.LoadPopCans(1))
		require.NoError(t, machine.DispensePopCan(0))
		machine.OpenChute()

		names := make([]string, 0)
		for _, e := range subject.Events() {
			names = append(names, e.Device+" "+e.Name)
		}
		assert.Equal(t, []string{
			"PopCanRack-0 loaded",
			"PopCanRack-0 popCanRemoved",
			"DeliveryChute itemDelivered",
			"PopCanRack-0 empty",
			"DeliveryChute doorOpened",
			"DeliveryChute doorClosed",
		}, names)
	})

	it("hears safety mode on every moving device and the light", func() {
		machine.EnableSafety()

		disabled := 0
		for _, e := range subject.Events() {
			if e.Name == "disabled" {
				disabled++
			}
		}
		assert.Equal(t, 4+2+1, disabled)

		last := subject.Events()[len(subject.Events())-1]
		assert.Equal(t, Event{OccursAt: time.Unix(0, 1234), Device: "OutOfOrderLight", Name: "activated"}, last)
	})

	it("hears the peripherals", func() {
		require.NoError(t, machine.PressButton(0))
		machine.Display().Display("Hi")
		machine.Lock().Lock()

		assert.Equal(t, []Event{
			{OccursAt: time.Unix(0, 1234), Device: "SelectionButton-0", Name: "pressed"},
			{OccursAt: time.Unix(0, 1234), Device: "Display", Name: "messageChange", Detail: `"" -> "Hi"`},
			{OccursAt: time.Unix(0, 1234), Device: "Lock", Name: "locked"},
		}, subject.Events())
	})
}
