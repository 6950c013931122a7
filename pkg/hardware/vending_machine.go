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

	"github.com/hashicorp/go-multierror"

	"vendingsim/pkg/simulator"
)

const (
	DefaultPopKindName = "<default>"
	DefaultPopKindCost = 1
)

// VendingMachine builds and owns every device and wires them together:
//
//	CoinSlot -> CoinReceptacle -> CoinRack per coin kind -> DeliveryChute
//	                           -> StorageBin (overflow)
//	         -> DeliveryChute (rejected coins, returned coins)
//	PopCanRack per selection button -> DeliveryChute
type VendingMachine struct {
	config Config

	coinSlot       *CoinSlot
	coinReceptacle *CoinReceptacle
	storageBin     *CoinReceptacle
	deliveryChute  *DeliveryChute

	coinKinds   []int
	coinRacks   []*CoinRack
	rackForKind map[int]*CoinRack

	popCanRacks  []*PopCanRack
	popKindNames []string
	popKindCosts []int

	selectionButtons []*SelectionButton
	exactChangeLight *IndicatorLight
	outOfOrderLight  *IndicatorLight
	display          *Display
	lock             *Lock

	safetyEnabled bool
}

func (vm *VendingMachine) Config() Config {
	return vm.config.WithDefaults()
}

func (vm *VendingMachine) CoinSlot() *CoinSlot {
	return vm.coinSlot
}

func (vm *VendingMachine) CoinReceptacle() *CoinReceptacle {
	return vm.coinReceptacle
}

func (vm *VendingMachine) StorageBin() *CoinReceptacle {
	return vm.storageBin
}

func (vm *VendingMachine) DeliveryChute() *DeliveryChute {
	return vm.deliveryChute
}

func (vm *VendingMachine) ExactChangeLight() *IndicatorLight {
	return vm.exactChangeLight
}

func (vm *VendingMachine) OutOfOrderLight() *IndicatorLight {
	return vm.outOfOrderLight
}

func (vm *VendingMachine) Display() *Display {
	return vm.display
}

func (vm *VendingMachine) Lock() *Lock {
	return vm.lock
}

func (vm *VendingMachine) NumberOfSelectionButtons() int {
	return len(vm.selectionButtons)
}

// SelectionButton returns nil for an index out of range, as do the other
// indexed accessors.
func (vm *VendingMachine) SelectionButton(index int) *SelectionButton {
	if index < 0 || index >= len(vm.selectionButtons) {
		return nil
	}
	return vm.selectionButtons[index]
}

func (vm *VendingMachine) NumberOfCoinRacks() int {
	return len(vm.coinRacks)
}

func (vm *VendingMachine) CoinRack(index int) *CoinRack {
	if index < 0 || index >= len(vm.coinRacks) {
		return nil
	}
	return vm.coinRacks[index]
}

func (vm *VendingMachine) CoinRackForCoinKind(value int) *CoinRack {
	return vm.rackForKind[value]
}

func (vm *VendingMachine) CoinKindForCoinRack(index int) int {
	if index < 0 || index >= len(vm.coinKinds) {
		return 0
	}
	return vm.coinKinds[index]
}

func (vm *VendingMachine) NumberOfPopCanRacks() int {
	return len(vm.popCanRacks)
}

func (vm *VendingMachine) PopCanRack(index int) *PopCanRack {
	if index < 0 || index >= len(vm.popCanRacks) {
		return nil
	}
	return vm.popCanRacks[index]
}

func (vm *VendingMachine) PopKindName(index int) string {
	if index < 0 || index >= len(vm.popKindNames) {
		return ""
	}
	return vm.popKindNames[index]
}

func (vm *VendingMachine) PopKindCost(index int) int {
	if index < 0 || index >= len(vm.popKindCosts) {
		return 0
	}
	return vm.popKindCosts[index]
}

func (vm *VendingMachine) IsSafetyEnabled() bool {
	return vm.safetyEnabled
}

// Configure names the pop kind and sets the cost for each pop can rack.
func (vm *VendingMachine) Configure(names []string, costs []int) error {
	var result *multierror.Error

	if len(names) != len(vm.popCanRacks) {
		result = multierror.Append(result, fmt.Errorf("%w: expected %d pop kind names, got %d", simulator.ErrSimulation, len(vm.popCanRacks), len(names)))
	}
	if len(costs) != len(vm.popCanRacks) {
		result = multierror.Append(result, fmt.Errorf("%w: expected %d pop kind costs, got %d", simulator.ErrSimulation, len(vm.popCanRacks), len(costs)))
	}
	for i, name := range names {
		if name == "" {
			result = multierror.Append(result, fmt.Errorf("%w: pop kind name %d is empty", simulator.ErrSimulation, i))
		}
	}
	for i, cost := range costs {
		if cost < 1 {
			result = multierror.Append(result, fmt.Errorf("%w: pop kind cost %d must be at least 1, got %d", simulator.ErrSimulation, i, cost))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	vm.popKindNames = append([]string(nil), names...)
	vm.popKindCosts = append([]int(nil), costs...)

	return nil
}

// LoadCoins loads counts[i] coins of rack i's kind into rack i. Every rack
// is checked before any is loaded.
func (vm *VendingMachine) LoadCoins(counts ...int) error {
	if err := vm.checkLoad("coin", counts, len(vm.coinRacks), func(i int) (Device, int, int) {
		rack := vm.coinRacks[i]
		return rack, rack.Size(), rack.Capacity()
	}); err != nil {
		return err
	}

	for i, count := range counts {
		coins := make([]Coin, 0, count)
		for j := 0; j < count; j++ {
			coins = append(coins, Coin{value: vm.coinKinds[i]})
		}
		if err := vm.coinRacks[i].Load(coins...); err != nil {
			return err
		}
	}

	return nil
}

// LoadPopCans loads counts[i] cans of rack i's pop kind into rack i.
func (vm *VendingMachine) LoadPopCans(counts ...int) error {
	if err := vm.checkLoad("pop can", counts, len(vm.popCanRacks), func(i int) (Device, int, int) {
		rack := vm.popCanRacks[i]
		return rack, rack.Size(), rack.Capacity()
	}); err != nil {
		return err
	}

	for i, count := range counts {
		cans := make([]PopCan, 0, count)
		for j := 0; j < count; j++ {
			cans = append(cans, PopCan{name: vm.popKindNames[i]})
		}
		if err := vm.popCanRacks[i].Load(cans...); err != nil {
			return err
		}
	}

	return nil
}

func (vm *VendingMachine) checkLoad(what string, counts []int, racks int, rack func(i int) (Device, int, int)) error {
	if len(counts) != racks {
		return fmt.Errorf("%w: expected %d %s rack counts, got %d", simulator.ErrSimulation, racks, what, len(counts))
	}

	var result *multierror.Error
	for i, count := range counts {
		device, size, capacity := rack(i)
		switch {
		case count < 0:
			result = multierror.Append(result, fmt.Errorf("%w: %s count must not be negative, got %d", simulator.ErrSimulation, device.Name(), count))
		case device.IsDisabled():
			result = multierror.Append(result, fmt.Errorf("%s cannot load: %w", device.Name(), simulator.ErrDisabled))
		case size+count > capacity:
			result = multierror.Append(result, fmt.Errorf("%s cannot load %d with %d of %d in stock: %w", device.Name(), count, size, capacity, simulator.ErrCapacityExceeded))
		}
	}

	return result.ErrorOrNil()
}

func (vm *VendingMachine) InsertCoin(value int) error {
	coin, err := NewCoin(value)
	if err != nil {
		return err
	}
	return vm.coinSlot.AddCoin(coin)
}

func (vm *VendingMachine) PressButton(index int) error {
	button := vm.SelectionButton(index)
	if button == nil {
		return fmt.Errorf("%w: there is no selection button %d", simulator.ErrSimulation, index)
	}
	button.Press()
	return nil
}

func (vm *VendingMachine) DispensePopCan(rackIndex int) error {
	rack := vm.PopCanRack(rackIndex)
	if rack == nil {
		return fmt.Errorf("%w: there is no pop can rack %d", simulator.ErrSimulation, rackIndex)
	}
	return rack.DispensePopCan()
}

func (vm *VendingMachine) OpenChute() []simulator.Entity {
	return vm.deliveryChute.RemoveItems()
}

// EnableSafety disables every device that moves coins or pop cans and
// turns on the out of order light. The whole machine is switched before the
// first listener is told, so no listener sees it half way.
func (vm *VendingMachine) EnableSafety() {
	vm.switchSafety(true)
}

func (vm *VendingMachine) DisableSafety() {
	vm.switchSafety(false)
}

func (vm *VendingMachine) switchSafety(enabled bool) {
	vm.safetyEnabled = enabled
	devices := vm.movingDevices()
	for _, d := range devices {
		d.setDisabled(enabled)
	}
	vm.outOfOrderLight.active = enabled

	for _, d := range devices {
		d.announceState()
	}
	vm.outOfOrderLight.announceLit()
}

func (vm *VendingMachine) movingDevices() []switchable {
	devices := []switchable{vm.coinSlot, vm.coinReceptacle, vm.storageBin, vm.deliveryChute}
	for _, r := range vm.coinRacks {
		devices = append(devices, r)
	}
	for _, r := range vm.popCanRacks {
		devices = append(devices, r)
	}
	return devices
}

// Devices lists every device in the machine.
func (vm *VendingMachine) Devices() []Device {
	var devices []Device
	for _, d := range vm.movingDevices() {
		devices = append(devices, d)
	}
	for _, b := range vm.selectionButtons {
		devices = append(devices, b)
	}
	return append(devices, vm.exactChangeLight, vm.outOfOrderLight, vm.display, vm.lock)
}

// Device finds a device by name, or returns nil.
func (vm *VendingMachine) Device(name string) Device {
	for _, d := range vm.Devices() {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// StoredContents is a copy of what is inside the machine.
type StoredContents struct {
	UnusedCoinsForChange     [][]Coin   `json:"unusedCoinsForChange"`
	PaymentCoinsInStorageBin []Coin     `json:"paymentCoinsInStorageBin"`
	UnsoldPopCans            [][]PopCan `json:"unsoldPopCans"`
}

func (vm *VendingMachine) StoredContents() StoredContents {
	contents := StoredContents{
		UnusedCoinsForChange:     make([][]Coin, 0, len(vm.coinRacks)),
		PaymentCoinsInStorageBin: vm.storageBin.Coins(),
		UnsoldPopCans:            make([][]PopCan, 0, len(vm.popCanRacks)),
	}
	for _, r := range vm.coinRacks {
		contents.UnusedCoinsForChange = append(contents.UnusedCoinsForChange, r.Coins())
	}
	for _, r := range vm.popCanRacks {
		contents.UnsoldPopCans = append(contents.UnsoldPopCans, r.PopCans())
	}
	return contents
}

func NewVendingMachine(config Config) (*VendingMachine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vending machine config: %w", err)
	}
	config = config.WithDefaults()

	vm := &VendingMachine{
		config:           config,
		coinKinds:        config.CoinKinds,
		rackForKind:      make(map[int]*CoinRack, len(config.CoinKinds)),
		coinSlot:         NewCoinSlot("CoinSlot", config.CoinKinds),
		exactChangeLight: NewIndicatorLight("ExactChangeLight"),
		outOfOrderLight:  NewIndicatorLight("OutOfOrderLight"),
		display:          NewDisplay("Display"),
		lock:             NewLock("Lock"),
	}

	var err error
	if vm.coinReceptacle, err = NewCoinReceptacle("CoinReceptacle", config.ReceptacleCapacity); err != nil {
		return nil, err
	}
	if vm.storageBin, err = NewCoinReceptacle("StorageBin", config.StorageBinCapacity); err != nil {
		return nil, err
	}
	if vm.deliveryChute, err = NewDeliveryChute("DeliveryChute", config.DeliveryChuteCapacity); err != nil {
		return nil, err
	}

	toChute := NewCoinChannel(vm.deliveryChute)
	denominations := make(map[int]*CoinChannel, len(config.CoinKinds))
	for _, kind := range config.CoinKinds {
		rack, err := NewCoinRack(fmt.Sprintf("CoinRack-%d", kind), config.CoinRackCapacity)
		if err != nil {
			return nil, err
		}
		rack.Connect(toChute)

		vm.coinRacks = append(vm.coinRacks, rack)
		vm.rackForKind[kind] = rack
		denominations[kind] = NewCoinChannel(rack)
	}

	vm.coinSlot.Connect(NewCoinChannel(vm.coinReceptacle), toChute)
	vm.coinReceptacle.Connect(denominations, NewCoinChannel(vm.storageBin), toChute)

	canToChute := NewPopCanChannel(vm.deliveryChute)
	for i := 0; i < config.SelectionButtonCount; i++ {
		rack, err := NewPopCanRack(fmt.Sprintf("PopCanRack-%d", i), config.PopCanRackCapacity)
		if err != nil {
			return nil, err
		}
		rack.Connect(canToChute)

		vm.popCanRacks = append(vm.popCanRacks, rack)
		vm.popKindNames = append(vm.popKindNames, DefaultPopKindName)
		vm.popKindCosts = append(vm.popKindCosts, DefaultPopKindCost)
		vm.selectionButtons = append(vm.selectionButtons, NewSelectionButton(fmt.Sprintf("SelectionButton-%d", i), i))
	}

	return vm, nil
}
