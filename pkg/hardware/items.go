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
	"encoding/json"
	"fmt"
	"strconv"

	"vendingsim/pkg/simulator"
)

const (
	CoinKind   simulator.EntityKind = "Coin"
	PopCanKind simulator.EntityKind = "PopCan"
)

// Coin is a single coin of a positive denomination, in the currency's
// smallest unit.
type Coin struct {
	value int
}

func (c Coin) Value() int {
	return c.value
}

func (c Coin) Name() simulator.EntityName {
	return simulator.EntityName(strconv.Itoa(c.value))
}

func (c Coin) Kind() simulator.EntityKind {
	return CoinKind
}

func (c Coin) String() string {
	return fmt.Sprintf("Coin(%d)", c.value)
}

// MarshalJSON writes a coin as its value.
func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

func (c *Coin) UnmarshalJSON(data []byte) error {
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	coin, err := NewCoin(value)
	if err != nil {
		return err
	}
	*c = coin
	return nil
}

// check catches the zero Coin, which was never made by NewCoin.
func (c Coin) check() error {
	if c.value <= 0 {
		return fmt.Errorf("%w: coin value must be positive, was %d", simulator.ErrSimulation, c.value)
	}
	return nil
}

func NewCoin(value int) (Coin, error) {
	coin := Coin{value: value}
	if err := coin.check(); err != nil {
		return Coin{}, err
	}
	return coin, nil
}

// PopCan is a can of a named pop brand.
type PopCan struct {
	name string
}

func (pc PopCan) Name() simulator.EntityName {
	return simulator.EntityName(pc.name)
}

func (pc PopCan) Kind() simulator.EntityKind {
	return PopCanKind
}

func (pc PopCan) String() string {
	return fmt.Sprintf("PopCan(%s)", pc.name)
}

func (pc PopCan) MarshalJSON() ([]byte, error) {
	return json.Marshal(pc.name)
}

func (pc *PopCan) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	can, err := NewPopCan(name)
	if err != nil {
		return err
	}
	*pc = can
	return nil
}

func (pc PopCan) check() error {
	if pc.name == "" {
		return fmt.Errorf("%w: pop can name must not be empty", simulator.ErrSimulation)
	}
	return nil
}

func NewPopCan(name string) (PopCan, error) {
	can := PopCan{name: name}
	if err := can.check(); err != nil {
		return PopCan{}, err
	}
	return can, nil
}

func coinsOf(entities []simulator.Entity) []Coin {
	coins := make([]Coin, 0, len(entities))
	for _, e := range entities {
		coins = append(coins, e.(Coin))
	}
	return coins
}

func popCansOf(entities []simulator.Entity) []PopCan {
	cans := make([]PopCan, 0, len(entities))
	for _, e := range entities {
		cans = append(cans, e.(PopCan))
	}
	return cans
}
