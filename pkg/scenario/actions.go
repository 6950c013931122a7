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
	"time"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
)

type Action string

const (
	InsertCoin     Action = "insert_coin"
	PressButton    Action = "press_button"
	DispensePopCan Action = "dispense_pop_can"
	OpenChute      Action = "open_chute"
	StoreCoins     Action = "store_coins"
	ReturnCoins    Action = "return_coins"
	ReleaseCoin    Action = "release_coin"
	LoadCoins      Action = "load_coins"
	LoadPopCans    Action = "load_pop_cans"
	UnloadCoins    Action = "unload_coins"
	UnloadPopCans  Action = "unload_pop_cans"
	EnableSafety   Action = "enable_safety"
	DisableSafety  Action = "disable_safety"
	EnableDevice   Action = "enable"
	DisableDevice  Action = "disable"
)

// StepSpec is one operator or customer action, At after the scenario
// starts. Value, Index, Counts and Device are read by the actions that need
// them.
type StepSpec struct {
	At     time.Duration `yaml:"at"`
	Action Action        `yaml:"action"`
	Value  int           `yaml:"value,omitempty"`
	Index  int           `yaml:"index,omitempty"`
	Counts []int         `yaml:"counts,omitempty"`
	Device string        `yaml:"device,omitempty"`
}

type performer func(vm *hardware.VendingMachine, s StepSpec) (func() error, error)

var actions = map[Action]performer{
	InsertCoin: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error { return vm.InsertCoin(s.Value) }, nil
	},
	PressButton: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error { return vm.PressButton(s.Index) }, nil
	},
	DispensePopCan: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error { return vm.DispensePopCan(s.Index) }, nil
	},
	OpenChute: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error {
			vm.OpenChute()
			return nil
		}, nil
	},
	StoreCoins: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return vm.CoinReceptacle().StoreCoins, nil
	},
	ReturnCoins: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return vm.CoinReceptacle().ReturnCoins, nil
	},
	ReleaseCoin: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		rack := vm.CoinRack(s.Index)
		if rack == nil {
			return nil, fmt.Errorf("%w: there is no coin rack %d", simulator.ErrSimulation, s.Index)
		}
		return rack.ReleaseCoin, nil
	},
	LoadCoins: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error { return vm.LoadCoins(s.Counts...) }, nil
	},
	LoadPopCans: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error { return vm.LoadPopCans(s.Counts...) }, nil
	},
	UnloadCoins: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		rack := vm.CoinRack(s.Index)
		if rack == nil {
			return nil, fmt.Errorf("%w: there is no coin rack %d", simulator.ErrSimulation, s.Index)
		}
		return func() error {
			_, err := rack.Unload()
			return err
		}, nil
	},
	UnloadPopCans: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		rack := vm.PopCanRack(s.Index)
		if rack == nil {
			return nil, fmt.Errorf("%w: there is no pop can rack %d", simulator.ErrSimulation, s.Index)
		}
		return func() error {
			_, err := rack.Unload()
			return err
		}, nil
	},
	EnableSafety: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error {
			vm.EnableSafety()
			return nil
		}, nil
	},
	DisableSafety: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		return func() error {
			vm.DisableSafety()
			return nil
		}, nil
	},
	EnableDevice: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		device := vm.Device(s.Device)
		if device == nil {
			return nil, fmt.Errorf("%w: there is no device '%s'", simulator.ErrSimulation, s.Device)
		}
		return func() error {
			device.Enable()
			return nil
		}, nil
	},
	DisableDevice: func(vm *hardware.VendingMachine, s StepSpec) (func() error, error) {
		device := vm.Device(s.Device)
		if device == nil {
			return nil, fmt.Errorf("%w: there is no device '%s'", simulator.ErrSimulation, s.Device)
		}
		return func() error {
			device.Disable()
			return nil
		}, nil
	},
}

// Step binds the action to a machine. The step occurs At after startAt.
func (s StepSpec) Step(vm *hardware.VendingMachine, startAt time.Time) (simulator.Step, error) {
	build, ok := actions[s.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action '%s'", simulator.ErrSimulation, s.Action)
	}

	perform, err := build(vm, s)
	if err != nil {
		return nil, err
	}

	step := simulator.NewStep(simulator.StepKind(s.Action), startAt.Add(s.At), perform)
	if note := s.describe(); note != "" {
		step.AddNote(note)
	}

	return step, nil
}

func (s StepSpec) describe() string {
	switch s.Action {
	case InsertCoin:
		return fmt.Sprintf("coin %d", s.Value)
	case PressButton, DispensePopCan, ReleaseCoin, UnloadCoins, UnloadPopCans:
		return fmt.Sprintf("index %d", s.Index)
	case LoadCoins, LoadPopCans:
		return fmt.Sprintf("counts %v", s.Counts)
	case EnableDevice, DisableDevice:
		return s.Device
	default:
		return ""
	}
}
