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

// Config is the topology a VendingMachine is built from.
type Config struct {
	CoinKinds             []int `yaml:"coinKinds" json:"coinKinds"`
	SelectionButtonCount  int   `yaml:"selectionButtonCount" json:"selectionButtonCount"`
	CoinRackCapacity      int   `yaml:"coinRackCapacity" json:"coinRackCapacity"`
	PopCanRackCapacity    int   `yaml:"popCanRackCapacity" json:"popCanRackCapacity"`
	ReceptacleCapacity    int   `yaml:"receptacleCapacity" json:"receptacleCapacity"`
	DeliveryChuteCapacity int   `yaml:"deliveryChuteCapacity,omitempty" json:"deliveryChuteCapacity,omitempty"`
	StorageBinCapacity    int   `yaml:"storageBinCapacity,omitempty" json:"storageBinCapacity,omitempty"`
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if len(c.CoinKinds) == 0 {
		result = multierror.Append(result, fmt.Errorf("%w: at least one coin kind is required", simulator.ErrSimulation))
	}

	seen := make(map[int]bool, len(c.CoinKinds))
	for _, kind := range c.CoinKinds {
		if kind <= 0 {
			result = multierror.Append(result, fmt.Errorf("%w: coin kinds must be positive, got %d", simulator.ErrSimulation, kind))
		}
		if seen[kind] {
			result = multierror.Append(result, fmt.Errorf("%w: coin kind %d appears more than once", simulator.ErrSimulation, kind))
		}
		seen[kind] = true
	}

	positive := []struct {
		field string
		value int
	}{
		{"selectionButtonCount", c.SelectionButtonCount},
		{"coinRackCapacity", c.CoinRackCapacity},
		{"popCanRackCapacity", c.PopCanRackCapacity},
		{"receptacleCapacity", c.ReceptacleCapacity},
	}
	for _, p := range positive {
		if p.value <= 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s must be positive, got %d", simulator.ErrSimulation, p.field, p.value))
		}
	}

	if c.DeliveryChuteCapacity < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: deliveryChuteCapacity must not be negative, got %d", simulator.ErrSimulation, c.DeliveryChuteCapacity))
	}
	if c.StorageBinCapacity < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: storageBinCapacity must not be negative, got %d", simulator.ErrSimulation, c.StorageBinCapacity))
	}

	return result.ErrorOrNil()
}

// WithDefaults fills the optional capacities from the receptacle capacity.
func (c Config) WithDefaults() Config {
	if c.DeliveryChuteCapacity == 0 {
		c.DeliveryChuteCapacity = c.ReceptacleCapacity
	}
	if c.StorageBinCapacity == 0 {
		c.StorageBinCapacity = c.ReceptacleCapacity
	}
	c.CoinKinds = append([]int(nil), c.CoinKinds...)
	return c
}
