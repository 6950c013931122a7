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

type CoinRackListener interface {
	HardwareListener
	CoinAdded(rack *CoinRack, coin Coin)
	CoinRemoved(rack *CoinRack, coin Coin)
	CoinsFull(rack *CoinRack)
	CoinsEmpty(rack *CoinRack)
	CoinsLoaded(rack *CoinRack, coins []Coin)
	CoinsUnloaded(rack *CoinRack, coins []Coin)
}

// CoinRack is a bounded FIFO store of coins. Released coins leave through
// the output channel.
type CoinRack struct {
	hardware[CoinRackListener]

	stock  simulator.ThroughStock
	output *CoinChannel
}

func (cr *CoinRack) Connect(output *CoinChannel) {
	cr.output = output
}

func (cr *CoinRack) Size() int {
	return int(cr.stock.Count())
}

func (cr *CoinRack) Capacity() int {
	return int(cr.stock.Capacity())
}

func (cr *CoinRack) HasSpace() bool {
	return cr.stock.HasSpace()
}

func (cr *CoinRack) Coins() []Coin {
	return coinsOf(cr.stock.EntitiesInStock())
}

func (cr *CoinRack) AcceptCoin(coin Coin) error {
	if cr.disabled {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, simulator.ErrDisabled)
	}
	if err := coin.check(); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, err)
	}

	if err := cr.stock.Add(coin); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, err)
	}

	cr.notify(func(l CoinRackListener) { l.CoinAdded(cr, coin) })
	if !cr.stock.HasSpace() {
		cr.notify(func(l CoinRackListener) { l.CoinsFull(cr) })
	}

	return nil
}

// ReleaseCoin sends the oldest coin down the output channel. The coin is
// gone from the rack even when delivery fails.
func (cr *CoinRack) ReleaseCoin() error {
	if cr.disabled {
		return fmt.Errorf("%s cannot release: %w", cr.name, simulator.ErrDisabled)
	}

	entity := cr.stock.Remove()
	if entity == nil {
		return fmt.Errorf("%s cannot release: %w", cr.name, simulator.ErrEmpty)
	}
	coin := entity.(Coin)

	cr.notify(func(l CoinRackListener) { l.CoinRemoved(cr, coin) })

	var deliveryErr error
	if err := cr.output.Deliver(coin); err != nil {
		deliveryErr = fmt.Errorf("%w: %s lost %s in delivery: %w", simulator.ErrSimulation, cr.name, coin, err)
	}

	if cr.stock.Count() == 0 {
		cr.notify(func(l CoinRackListener) { l.CoinsEmpty(cr) })
	}

	return deliveryErr
}

// Load stocks coins directly, bypassing the channels. Nothing is loaded
// unless all of them fit.
func (cr *CoinRack) Load(coins ...Coin) error {
	if cr.disabled {
		return fmt.Errorf("%s cannot load: %w", cr.name, simulator.ErrDisabled)
	}
	for _, c := range coins {
		if err := c.check(); err != nil {
			return fmt.Errorf("%s cannot load: %w", cr.name, err)
		}
	}
	if int(cr.stock.Count())+len(coins) > cr.Capacity() {
		return fmt.Errorf("%s cannot load %d coins with %d of %d in stock: %w", cr.name, len(coins), cr.Size(), cr.Capacity(), simulator.ErrCapacityExceeded)
	}

	for _, c := range coins {
		if err := cr.stock.Add(c); err != nil {
			return fmt.Errorf("%w: %s failed loading %s: %w", simulator.ErrSimulation, cr.name, c, err)
		}
	}

	loaded := append([]Coin(nil), coins...)
	cr.notify(func(l CoinRackListener) { l.CoinsLoaded(cr, loaded) })

	return nil
}

// Unload removes every coin, oldest first.
func (cr *CoinRack) Unload() ([]Coin, error) {
	if cr.disabled {
		return nil, fmt.Errorf("%s cannot unload: %w", cr.name, simulator.ErrDisabled)
	}

	unloaded := coinsOf(cr.stock.Drain())
	cr.notify(func(l CoinRackListener) { l.CoinsUnloaded(cr, unloaded) })

	return unloaded, nil
}

func NewCoinRack(name string, capacity int) (*CoinRack, error) {
	stock, err := simulator.NewBoundedStock(simulator.StockName(name), CoinKind, capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create coin rack '%s': %w", name, err)
	}

	cr := &CoinRack{stock: stock}
	cr.init(cr, name)

	return cr, nil
}
