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
	"fmt"
	"strings"
	"time"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
)

type Clock interface {
	CurrentStepTime() time.Time
}

type Event struct {
	OccursAt time.Time `json:"occursAt"`
	Device   string    `json:"device"`
	Name     string    `json:"name"`
	Detail   string    `json:"detail,omitempty"`
}

// Recorder captures every event emitted by a machine's devices, stamped
// with the simulated time at which it happened.
type Recorder struct {
	clock  Clock
	events []Event
}

func (r *Recorder) Events() []Event {
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

func (r *Recorder) record(device hardware.Device, name, detail string) {
	r.events = append(r.events, Event{
		OccursAt: r.clock.CurrentStepTime(),
		Device:   device.Name(),
		Name:     name,
		Detail:   detail,
	})
}

// Attach registers the recorder on every device of the machine.
func (r *Recorder) Attach(machine *hardware.VendingMachine) {
	b := base{r: r}

	machine.CoinSlot().Register(&slotObserver{b})
	machine.CoinReceptacle().Register(&receptacleObserver{b})
	machine.StorageBin().Register(&receptacleObserver{b})
	machine.DeliveryChute().Register(&chuteObserver{b})
	for i := 0; i < machine.NumberOfCoinRacks(); i++ {
		machine.CoinRack(i).Register(&coinRackObserver{b})
	}
	for i := 0; i < machine.NumberOfPopCanRacks(); i++ {
		machine.PopCanRack(i).Register(&popCanRackObserver{b})
	}
	for i := 0; i < machine.NumberOfSelectionButtons(); i++ {
		machine.SelectionButton(i).Register(&buttonObserver{b})
	}
	machine.ExactChangeLight().Register(&lightObserver{b})
	machine.OutOfOrderLight().Register(&lightObserver{b})
	machine.Display().Register(&displayObserver{b})
	machine.Lock().Register(&lockObserver{b})
}

func NewRecorder(clock Clock) *Recorder {
	return &Recorder{
		clock:  clock,
		events: make([]Event, 0),
	}
}

type base struct {
	r *Recorder
}

func (b base) Enabled(device hardware.Device) {
	b.r.record(device, "enabled", "")
}

func (b base) Disabled(device hardware.Device) {
	b.r.record(device, "disabled", "")
}

type coinRackObserver struct{ base }

func (o *coinRackObserver) CoinAdded(rack *hardware.CoinRack, coin hardware.Coin) {
	o.r.record(rack, "coinAdded", string(coin.Name()))
}

func (o *coinRackObserver) CoinRemoved(rack *hardware.CoinRack, coin hardware.Coin) {
	o.r.record(rack, "coinRemoved", string(coin.Name()))
}

func (o *coinRackObserver) CoinsFull(rack *hardware.CoinRack) {
	o.r.record(rack, "full", "")
}

func (o *coinRackObserver) CoinsEmpty(rack *hardware.CoinRack) {
	o.r.record(rack, "empty", "")
}

func (o *coinRackObserver) CoinsLoaded(rack *hardware.CoinRack, coins []hardware.Coin) {
	o.r.record(rack, "loaded", coinList(coins))
}

func (o *coinRackObserver) CoinsUnloaded(rack *hardware.CoinRack, coins []hardware.Coin) {
	o.r.record(rack, "unloaded", coinList(coins))
}

type popCanRackObserver struct{ base }

func (o *popCanRackObserver) PopCanAdded(rack *hardware.PopCanRack, can hardware.PopCan) {
	o.r.record(rack, "popCanAdded", string(can.Name()))
}

func (o *popCanRackObserver) PopCanRemoved(rack *hardware.PopCanRack, can hardware.PopCan) {
	o.r.record(rack, "popCanRemoved", string(can.Name()))
}

func (o *popCanRackObserver) PopCansFull(rack *hardware.PopCanRack) {
	o.r.record(rack, "full", "")
}

func (o *popCanRackObserver) PopCansEmpty(rack *hardware.PopCanRack) {
	o.r.record(rack, "empty", "")
}

func (o *popCanRackObserver) PopCansLoaded(rack *hardware.PopCanRack, cans []hardware.PopCan) {
	o.r.record(rack, "loaded", popCanList(cans))
}

func (o *popCanRackObserver) PopCansUnloaded(rack *hardware.PopCanRack, cans []hardware.PopCan) {
	o.r.record(rack, "unloaded", popCanList(cans))
}

type receptacleObserver struct{ base }

func (o *receptacleObserver) CoinAdded(receptacle *hardware.CoinReceptacle, coin hardware.Coin) {
	o.r.record(receptacle, "coinAdded", string(coin.Name()))
}

func (o *receptacleObserver) CoinsRemoved(receptacle *hardware.CoinReceptacle) {
	o.r.record(receptacle, "coinsRemoved", "")
}

func (o *receptacleObserver) CoinsFull(receptacle *hardware.CoinReceptacle) {
	o.r.record(receptacle, "full", "")
}

func (o *receptacleObserver) CoinsLoaded(receptacle *hardware.CoinReceptacle, coins []hardware.Coin) {
	o.r.record(receptacle, "loaded", coinList(coins))
}

func (o *receptacleObserver) CoinsUnloaded(receptacle *hardware.CoinReceptacle, coins []hardware.Coin) {
	o.r.record(receptacle, "unloaded", coinList(coins))
}

type slotObserver struct{ base }

func (o *slotObserver) ValidCoinInserted(slot *hardware.CoinSlot, coin hardware.Coin) {
	o.r.record(slot, "validCoinInserted", string(coin.Name()))
}

func (o *slotObserver) CoinRejected(slot *hardware.CoinSlot, coin hardware.Coin) {
	o.r.record(slot, "coinRejected", string(coin.Name()))
}

type chuteObserver struct{ base }

func (o *chuteObserver) ItemDelivered(chute *hardware.DeliveryChute, item simulator.Entity) {
	o.r.record(chute, "itemDelivered", fmt.Sprintf("%s %s", item.Kind(), item.Name()))
}

func (o *chuteObserver) DoorOpened(chute *hardware.DeliveryChute) {
	o.r.record(chute, "doorOpened", "")
}

func (o *chuteObserver) DoorClosed(chute *hardware.DeliveryChute) {
	o.r.record(chute, "doorClosed", "")
}

func (o *chuteObserver) ChuteFull(chute *hardware.DeliveryChute) {
	o.r.record(chute, "full", "")
}

type lightObserver struct{ base }

func (o *lightObserver) Activated(light *hardware.IndicatorLight) {
	o.r.record(light, "activated", "")
}

func (o *lightObserver) Deactivated(light *hardware.IndicatorLight) {
	o.r.record(light, "deactivated", "")
}

type lockObserver struct{ base }

func (o *lockObserver) Locked(lock *hardware.Lock) {
	o.r.record(lock, "locked", "")
}

func (o *lockObserver) Unlocked(lock *hardware.Lock) {
	o.r.record(lock, "unlocked", "")
}

type displayObserver struct{ base }

func (o *displayObserver) MessageChange(display *hardware.Display, oldMessage, newMessage string) {
	o.r.record(display, "messageChange", fmt.Sprintf("%q -> %q", oldMessage, newMessage))
}

type buttonObserver struct{ base }

func (o *buttonObserver) Pressed(button *hardware.SelectionButton) {
	o.r.record(button, "pressed", "")
}

func coinList(coins []hardware.Coin) string {
	values := make([]string, 0, len(coins))
	for _, c := range coins {
		values = append(values, string(c.Name()))
	}
	return strings.Join(values, ",")
}

func popCanList(cans []hardware.PopCan) string {
	names := make([]string, 0, len(cans))
	for _, c := range cans {
		names = append(names, string(c.Name()))
	}
	return strings.Join(names, ",")
}
