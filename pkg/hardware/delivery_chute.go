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

type DeliveryChuteListener interface {
	HardwareListener
	ItemDelivered(chute *DeliveryChute, item simulator.Entity)
	DoorOpened(chute *DeliveryChute)
	DoorClosed(chute *DeliveryChute)
	ChuteFull(chute *DeliveryChute)
}

// DeliveryChute collects coins and pop cans alike until a customer opens
// the door.
type DeliveryChute struct {
	hardware[DeliveryChuteListener]

	stock simulator.ThroughStock
}

func (dc *DeliveryChute) Size() int {
	return int(dc.stock.Count())
}

func (dc *DeliveryChute) Capacity() int {
	return int(dc.stock.Capacity())
}

func (dc *DeliveryChute) HasSpace() bool {
	return dc.stock.HasSpace()
}

func (dc *DeliveryChute) Items() []simulator.Entity {
	return dc.stock.EntitiesInStock()
}

func (dc *DeliveryChute) AcceptCoin(coin Coin) error {
	return dc.accept(coin, coin.check)
}

func (dc *DeliveryChute) AcceptPopCan(can PopCan) error {
	return dc.accept(can, can.check)
}

func (dc *DeliveryChute) accept(item simulator.Entity, check func() error) error {
	if dc.disabled {
		return fmt.Errorf("%s cannot take %s: %w", dc.name, item, simulator.ErrDisabled)
	}
	if err := check(); err != nil {
		return fmt.Errorf("%s cannot take %s: %w", dc.name, item, err)
	}

	if err := dc.stock.Add(item); err != nil {
		return fmt.Errorf("%s cannot take %s: %w", dc.name, item, err)
	}

	dc.notify(func(l DeliveryChuteListener) { l.ItemDelivered(dc, item) })
	if !dc.stock.HasSpace() {
		dc.notify(func(l DeliveryChuteListener) { l.ChuteFull(dc) })
	}

	return nil
}

// RemoveItems opens the door and takes everything out. It works whether or
// not the chute is disabled.
func (dc *DeliveryChute) RemoveItems() []simulator.Entity {
	dc.notify(func(l DeliveryChuteListener) { l.DoorOpened(dc) })
	items := dc.stock.Drain()
	if items == nil {
		items = make([]simulator.Entity, 0)
	}
	dc.notify(func(l DeliveryChuteListener) { l.DoorClosed(dc) })

	return items
}

func NewDeliveryChute(name string, capacity int) (*DeliveryChute, error) {
	stock, err := simulator.NewBoundedStock(simulator.StockName(name), simulator.AnyKind, capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create delivery chute '%s': %w", name, err)
	}

	dc := &DeliveryChute{stock: stock}
	dc.init(dc, name)

	return dc, nil
}
