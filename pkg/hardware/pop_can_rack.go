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

	"vendingsim/pkg/simulator"
)

type PopCanRackListener interface {
	HardwareListener
	PopCanAdded(rack *PopCanRack, can PopCan)
	PopCanRemoved(rack *PopCanRack, can PopCan)
	PopCansFull(rack *PopCanRack)
	PopCansEmpty(rack *PopCanRack)
	PopCansLoaded(rack *PopCanRack, cans []PopCan)
	PopCansUnloaded(rack *PopCanRack, cans []PopCan)
}

type PopCanRack struct {
	hardware[PopCanRackListener]

	stock  simulator.ThroughStock
	output *PopCanChannel
}

func (pr *PopCanRack) Connect(output *PopCanChannel) {
	pr.output = output
}

func (pr *PopCanRack) Size() int {
	return int(pr.stock.Count())
}

func (pr *PopCanRack) Capacity() int {
	return int(pr.stock.Capacity())
}

func (pr *PopCanRack) HasSpace() bool {
	return pr.stock.HasSpace()
}

func (pr *PopCanRack) PopCans() []PopCan {
	return popCansOf(pr.stock.EntitiesInStock())
}

func (pr *PopCanRack) AcceptPopCan(can PopCan) error {
	if pr.disabled {
		return fmt.Errorf("%s cannot accept %s: %w", pr.name, can, simulator.ErrDisabled)
	}
	if err := can.check(); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", pr.name, can, err)
	}

	if err := pr.stock.Add(can); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", pr.name, can, err)
	}

	pr.notify(func(l PopCanRackListener) { l.PopCanAdded(pr, can) })
	if !pr.stock.HasSpace() {
		pr.notify(func(l PopCanRackListener) { l.PopCansFull(pr) })
	}

	return nil
}

// DispensePopCan sends the oldest can down the output channel. Like
// CoinRack.ReleaseCoin, a failed delivery does not put the can back.
func (pr *PopCanRack) DispensePopCan() error {
	if pr.disabled {
		return fmt.Errorf("%s cannot dispense: %w", pr.name, simulator.ErrDisabled)
	}

	entity := pr.stock.Remove()
	if entity == nil {
		return fmt.Errorf("%s cannot dispense: %w", pr.name, simulator.ErrEmpty)
	}
	can := entity.(PopCan)

	pr.notify(func(l PopCanRackListener) { l.PopCanRemoved(pr, can) })

	var deliveryErr error
	if err := pr.output.Deliver(can); err != nil {
		deliveryErr = fmt.Errorf("%w: %s lost %s in delivery: %w", simulator.ErrSimulation, pr.name, can, err)
	}

	if pr.stock.Count() == 0 {
		pr.notify(func(l PopCanRackListener) { l.PopCansEmpty(pr) })
	}

	return deliveryErr
}

func (pr *PopCanRack) Load(cans ...PopCan) error {
	if pr.disabled {
		return fmt.Errorf("%s cannot load: %w", pr.name, simulator.ErrDisabled)
	}
	for _, can := range cans {
		if err := can.check(); err != nil {
			return fmt.Errorf("%s cannot load: %w", pr.name, err)
		}
	}
	if pr.Size()+len(cans) > pr.Capacity() {
		return fmt.Errorf("%s cannot load %d pop cans with %d of %d in stock: %w", pr.name, len(cans), pr.Size(), pr.Capacity(), simulator.ErrCapacityExceeded)
	}

	for _, c := range cans {
		if err := pr.stock.Add(c); err != nil {
			return fmt.Errorf("%w: %s failed loading %s: %w", simulator.ErrSimulation, pr.name, c, err)
		}
	}

	loaded := append([]PopCan(nil), cans...)
	pr.notify(func(l PopCanRackListener) { l.PopCansLoaded(pr, loaded) })

	return nil
}

func (pr *PopCanRack) Unload() ([]PopCan, error) {
	if pr.disabled {
		return nil, fmt.Errorf("%s cannot unload: %w", pr.name, simulator.ErrDisabled)
	}

	unloaded := popCansOf(pr.stock.Drain())
	pr.notify(func(l PopCanRackListener) { l.PopCansUnloaded(pr, unloaded) })

	return unloaded, nil
}

func NewPopCanRack(name string, capacity int) (*PopCanRack, error) {
	stock, err := simulator.NewBoundedStock(simulator.StockName(name), PopCanKind, capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create pop can rack '%s': %w", name, err)
	}

	pr := &PopCanRack{stock: stock}
	pr.init(pr, name)

	return pr, nil
}
