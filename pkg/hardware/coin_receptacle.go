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

type CoinReceptacleListener interface {
	HardwareListener
	CoinAdded(receptacle *CoinReceptacle, coin Coin)
	CoinsRemoved(receptacle *CoinReceptacle)
	CoinsFull(receptacle *CoinReceptacle)
	CoinsLoaded(receptacle *CoinReceptacle, coins []Coin)
	CoinsUnloaded(receptacle *CoinReceptacle, coins []Coin)
}

// CoinReceptacle holds coins until they are either stored or returned.
// Stored coins go to the channel for their denomination when it has space,
// and to the "other" channel when it does not.
type CoinReceptacle struct {
	hardware[CoinReceptacleListener]

	stock         simulator.ThroughStock
	denominations map[int]*CoinChannel
	other         *CoinChannel
	coinReturn    *CoinChannel
}

// Connect wires the receptacle's outputs. The denomination map is copied.
func (cr *CoinReceptacle) Connect(denominations map[int]*CoinChannel, other, coinReturn *CoinChannel) {
	cr.denominations = make(map[int]*CoinChannel, len(denominations))
	for value, channel := range denominations {
		cr.denominations[value] = channel
	}
	cr.other = other
	cr.coinReturn = coinReturn
}

func (cr *CoinReceptacle) Size() int {
	return int(cr.stock.Count())
}

func (cr *CoinReceptacle) Capacity() int {
	return int(cr.stock.Capacity())
}

func (cr *CoinReceptacle) HasSpace() bool {
	return cr.stock.HasSpace()
}

func (cr *CoinReceptacle) Coins() []Coin {
	return coinsOf(cr.stock.EntitiesInStock())
}

func (cr *CoinReceptacle) AcceptCoin(coin Coin) error {
	if cr.disabled {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, simulator.ErrDisabled)
	}
	if err := coin.check(); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, err)
	}

	if err := cr.stock.Add(coin); err != nil {
		return fmt.Errorf("%s cannot accept %s: %w", cr.name, coin, err)
	}

	cr.notify(func(l CoinReceptacleListener) { l.CoinAdded(cr, coin) })
	if !cr.stock.HasSpace() {
		cr.notify(func(l CoinReceptacleListener) { l.CoinsFull(cr) })
	}

	return nil
}

// StoreCoins routes every held coin, oldest first. It is not atomic: when a
// coin cannot be routed, the coins before it stay delivered and the rest
// stay in the receptacle.
func (cr *CoinReceptacle) StoreCoins() error {
	if cr.disabled {
		return fmt.Errorf("%s cannot store coins: %w", cr.name, simulator.ErrDisabled)
	}

	coins := cr.Coins()
	for i, coin := range coins {
		if err := cr.route(coin); err != nil {
			cr.keep(coins[i:])
			return err
		}
	}

	cr.stock.Drain()
	if len(coins) > 0 {
		cr.notify(func(l CoinReceptacleListener) { l.CoinsRemoved(cr) })
	}

	return nil
}

func (cr *CoinReceptacle) route(coin Coin) error {
	if channel, ok := cr.denominations[coin.Value()]; ok && channel.HasSpace() {
		if err := channel.Deliver(coin); err != nil {
			return fmt.Errorf("%s could not store %s: %w", cr.name, coin, err)
		}
		return nil
	}

	if cr.other == nil {
		return fmt.Errorf("%w: %s has nowhere to store %s", simulator.ErrSimulation, cr.name, coin)
	}
	if !cr.other.HasSpace() {
		return fmt.Errorf("%s has no room to store %s: %w", cr.name, coin, simulator.ErrCapacityExceeded)
	}
	if err := cr.other.Deliver(coin); err != nil {
		return fmt.Errorf("%s could not store %s: %w", cr.name, coin, err)
	}

	return nil
}

// ReturnCoins sends every held coin down the return channel.
func (cr *CoinReceptacle) ReturnCoins() error {
	if cr.disabled {
		return fmt.Errorf("%s cannot return coins: %w", cr.name, simulator.ErrDisabled)
	}

	coins := cr.Coins()
	for i, coin := range coins {
		if err := cr.coinReturn.Deliver(coin); err != nil {
			cr.keep(coins[i:])
			return fmt.Errorf("%s could not return %s: %w", cr.name, coin, err)
		}
	}

	cr.stock.Drain()
	if len(coins) > 0 {
		cr.notify(func(l CoinReceptacleListener) { l.CoinsRemoved(cr) })
	}

	return nil
}

func (cr *CoinReceptacle) Load(coins ...Coin) error {
	if cr.disabled {
		return fmt.Errorf("%s cannot load: %w", cr.name, simulator.ErrDisabled)
	}
	for _, c := range coins {
		if err := c.check(); err != nil {
			return fmt.Errorf("%s cannot load: %w", cr.name, err)
		}
	}
	if cr.Size()+len(coins) > cr.Capacity() {
		return fmt.Errorf("%s cannot load %d coins with %d of %d in stock: %w", cr.name, len(coins), cr.Size(), cr.Capacity(), simulator.ErrCapacityExceeded)
	}

	for _, c := range coins {
		if err := cr.stock.Add(c); err != nil {
			return fmt.Errorf("%w: %s failed loading %s: %w", simulator.ErrSimulation, cr.name, c, err)
		}
	}

	loaded := append([]Coin(nil), coins...)
	cr.notify(func(l CoinReceptacleListener) { l.CoinsLoaded(cr, loaded) })

	return nil
}

func (cr *CoinReceptacle) Unload() ([]Coin, error) {
	if cr.disabled {
		return nil, fmt.Errorf("%s cannot unload: %w", cr.name, simulator.ErrDisabled)
	}

	unloaded := coinsOf(cr.stock.Drain())
	cr.notify(func(l CoinReceptacleListener) { l.CoinsUnloaded(cr, unloaded) })

	return unloaded, nil
}

// keep replaces the contents with the coins that were not routed.
func (cr *CoinReceptacle) keep(remaining []Coin) {
	cr.stock.Drain()
	for _, c := range remaining {
		_ = cr.stock.Add(c)
	}
}

func NewCoinReceptacle(name string, capacity int) (*CoinReceptacle, error) {
	stock, err := simulator.NewBoundedStock(simulator.StockName(name), CoinKind, capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create coin receptacle '%s': %w", name, err)
	}

	cr := &CoinReceptacle{
		stock:         stock,
		denominations: make(map[int]*CoinChannel),
	}
	cr.init(cr, name)

	return cr, nil
}
