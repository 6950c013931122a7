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

package hardware

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"vendingsim/pkg/simulator"
)

type recorder struct {
	events []string
}

func (r *recorder) record(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recorder) Enabled(device Device) {
	r.record("enabled %s", device.Name())
}

func (r *recorder) Disabled(device Device) {
	r.record("disabled %s", device.Name())
}

type coinRackRecorder struct {
	recorder
}

func (r *coinRackRecorder) CoinAdded(rack *CoinRack, coin Coin) {
	r.record("coinAdded %d", coin.Value())
}

func (r *coinRackRecorder) CoinRemoved(rack *CoinRack, coin Coin) {
	r.record("coinRemoved %d", coin.Value())
}

func (r *coinRackRecorder) CoinsFull(rack *CoinRack) {
	r.record("full")
}

func (r *coinRackRecorder) CoinsEmpty(rack *CoinRack) {
	r.record("empty")
}

func (r *coinRackRecorder) CoinsLoaded(rack *CoinRack, coins []Coin) {
	r.record("loaded %v", coins)
}

func (r *coinRackRecorder) CoinsUnloaded(rack *CoinRack, coins []Coin) {
	r.record("unloaded %v", coins)
}

type popCanRackRecorder struct {
	recorder
}

func (r *popCanRackRecorder) PopCanAdded(rack *PopCanRack, can PopCan) {
	r.record("popCanAdded %s", can.Name())
}

func (r *popCanRackRecorder) PopCanRemoved(rack *PopCanRack, can PopCan) {
	r.record("popCanRemoved %s", can.Name())
}

func (r *popCanRackRecorder) PopCansFull(rack *PopCanRack) {
	r.record("full")
}

func (r *popCanRackRecorder) PopCansEmpty(rack *PopCanRack) {
	r.record("empty")
}

func (r *popCanRackRecorder) PopCansLoaded(rack *PopCanRack, cans []PopCan) {
	r.record("loaded %v", cans)
}

func (r *popCanRackRecorder) PopCansUnloaded(rack *PopCanRack, cans []PopCan) {
	r.record("unloaded %v", cans)
}

type receptacleRecorder struct {
	recorder
}

func (r *receptacleRecorder) CoinAdded(receptacle *CoinReceptacle, coin Coin) {
	r.record("coinAdded %d", coin.Value())
}

func (r *receptacleRecorder) CoinsRemoved(receptacle *CoinReceptacle) {
	r.record("coinsRemoved")
}

func (r *receptacleRecorder) CoinsFull(receptacle *CoinReceptacle) {
	r.record("full")
}

func (r *receptacleRecorder) CoinsLoaded(receptacle *CoinReceptacle, coins []Coin) {
	r.record("loaded %v", coins)
}

func (r *receptacleRecorder) CoinsUnloaded(receptacle *CoinReceptacle, coins []Coin) {
	r.record("unloaded %v", coins)
}

type chuteRecorder struct {
	recorder
}

func (r *chuteRecorder) ItemDelivered(chute *DeliveryChute, item simulator.Entity) {
	r.record("itemDelivered %s", item.Name())
}

func (r *chuteRecorder) DoorOpened(chute *DeliveryChute) {
	r.record("doorOpened")
}

func (r *chuteRecorder) DoorClosed(chute *DeliveryChute) {
	r.record("doorClosed")
}

func (r *chuteRecorder) ChuteFull(chute *DeliveryChute) {
	r.record("full")
}

type lightRecorder struct {
	recorder
}

func (r *lightRecorder) Activated(light *IndicatorLight) {
	r.record("activated")
}

func (r *lightRecorder) Deactivated(light *IndicatorLight) {
	r.record("deactivated")
}

type mockCoinSlotListener struct {
	mock.Mock
}

func (m *mockCoinSlotListener) Enabled(device Device) {
	m.Called(device)
}

func (m *mockCoinSlotListener) Disabled(device Device) {
	m.Called(device)
}

func (m *mockCoinSlotListener) ValidCoinInserted(slot *CoinSlot, coin Coin) {
	m.Called(slot, coin)
}

func (m *mockCoinSlotListener) CoinRejected(slot *CoinSlot, coin Coin) {
	m.Called(slot, coin)
}

type mockSelectionButtonListener struct {
	mock.Mock
}

func (m *mockSelectionButtonListener) Enabled(device Device) {
	m.Called(device)
}

func (m *mockSelectionButtonListener) Disabled(device Device) {
	m.Called(device)
}

func (m *mockSelectionButtonListener) Pressed(button *SelectionButton) {
	m.Called(button)
}

type fakeCoinSink struct {
	coins []Coin
	full  bool
	err   error
}

func (f *fakeCoinSink) AcceptCoin(coin Coin) error {
	if f.err != nil {
		return f.err
	}
	f.coins = append(f.coins, coin)
	return nil
}

func (f *fakeCoinSink) HasSpace() bool {
	return !f.full
}

type fakePopCanSink struct {
	cans []PopCan
	err  error
}

func (f *fakePopCanSink) AcceptPopCan(can PopCan) error {
	if f.err != nil {
		return f.err
	}
	f.cans = append(f.cans, can)
	return nil
}

func (f *fakePopCanSink) HasSpace() bool {
	return true
}

func coins(values ...int) []Coin {
	result := make([]Coin, 0, len(values))
	for _, v := range values {
		result = append(result, Coin{value: v})
	}
	return result
}
