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
	"errors"
	"fmt"
	"sort"

	"vendingsim/pkg/simulator"
)

type CoinSlotListener interface {
	HardwareListener
	ValidCoinInserted(slot *CoinSlot, coin Coin)
	CoinRejected(slot *CoinSlot, coin Coin)
}

// CoinSlot is the front door for coins. Accepted denominations go down the
// valid channel; anything else, or anything that does not fit, is rejected
// down the invalid channel.
type CoinSlot struct {
	hardware[CoinSlotListener]

	accepted map[int]struct{}
	valid    *CoinChannel
	invalid  *CoinChannel
}

func (cs *CoinSlot) Connect(valid, invalid *CoinChannel) {
	cs.valid = valid
	cs.invalid = invalid
}

func (cs *CoinSlot) Accepts(value int) bool {
	_, ok := cs.accepted[value]
	return ok
}

func (cs *CoinSlot) AcceptedDenominations() []int {
	values := make([]int, 0, len(cs.accepted))
	for v := range cs.accepted {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func (cs *CoinSlot) AddCoin(coin Coin) error {
	if cs.disabled {
		return fmt.Errorf("%s cannot take %s: %w", cs.name, coin, simulator.ErrDisabled)
	}
	if err := coin.check(); err != nil {
		return fmt.Errorf("%s cannot take %s: %w", cs.name, coin, err)
	}

	if cs.Accepts(coin.Value()) && cs.valid.HasSpace() {
		if err := cs.valid.Deliver(coin); err != nil {
			if errors.Is(err, simulator.ErrCapacityExceeded) {
				return fmt.Errorf("%w: %s was told there was space for %s: %w", simulator.ErrSimulation, cs.name, coin, err)
			}
			return fmt.Errorf("%s could not pass on %s: %w", cs.name, coin, err)
		}

		cs.notify(func(l CoinSlotListener) { l.ValidCoinInserted(cs, coin) })
		return nil
	}

	if !cs.invalid.HasSpace() {
		return fmt.Errorf("%w: %s has nowhere to send %s: %w", simulator.ErrSimulation, cs.name, coin, simulator.ErrCapacityExceeded)
	}
	if err := cs.invalid.Deliver(coin); err != nil {
		return fmt.Errorf("%s could not reject %s: %w", cs.name, coin, err)
	}

	cs.notify(func(l CoinSlotListener) { l.CoinRejected(cs, coin) })
	return nil
}

func NewCoinSlot(name string, denominations []int) *CoinSlot {
	cs := &CoinSlot{accepted: make(map[int]struct{}, len(denominations))}
	for _, d := range denominations {
		cs.accepted[d] = struct{}{}
	}
	cs.init(cs, name)

	return cs
}
