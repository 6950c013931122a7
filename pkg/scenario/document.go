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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/simulator"
)

// Document describes one scenario: the machine, what it is stocked with,
// and what happens to it over time.
type Document struct {
	Name      string          `yaml:"name"`
	Duration  time.Duration   `yaml:"duration"`
	Machine   hardware.Config `yaml:"machine"`
	Products  []Product       `yaml:"products,omitempty"`
	Stock     Stock           `yaml:"stock,omitempty"`
	Customers *Customers      `yaml:"customers,omitempty"`
	Steps     []StepSpec      `yaml:"steps,omitempty"`
}

type Product struct {
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
}

// Stock is loaded before the scenario starts, one count per rack.
type Stock struct {
	Coins   []int `yaml:"coins,omitempty"`
	PopCans []int `yaml:"popCans,omitempty"`
}

type Customers struct {
	Pattern        string        `yaml:"pattern"`
	Count          int           `yaml:"count,omitempty"`
	DeltaV         int           `yaml:"deltaV,omitempty"`
	MaxPerInterval int           `yaml:"maxPerInterval,omitempty"`
	Interval       time.Duration `yaml:"interval,omitempty"`
	PerInterval    int           `yaml:"perInterval,omitempty"`
	StepAfter      time.Duration `yaml:"stepAfter,omitempty"`
	Amplitude      int           `yaml:"amplitude,omitempty"`
	Period         time.Duration `yaml:"period,omitempty"`
	Pace           time.Duration `yaml:"pace,omitempty"`
	Seed           int64         `yaml:"seed,omitempty"`
}

const (
	UniformPattern    = "uniform"
	RampPattern       = "ramp"
	StepPattern       = "step"
	SinusoidalPattern = "sinusoidal"
)

func (d *Document) Validate() error {
	var result *multierror.Error

	if d.Duration <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: duration must be positive, got %s", simulator.ErrSimulation, d.Duration))
	}
	if err := d.Machine.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if len(d.Products) > 0 && len(d.Products) != d.Machine.SelectionButtonCount {
		result = multierror.Append(result, fmt.Errorf("%w: %d products for %d selection buttons", simulator.ErrSimulation, len(d.Products), d.Machine.SelectionButtonCount))
	}

	for i, s := range d.Steps {
		if _, ok := actions[s.Action]; !ok {
			result = multierror.Append(result, fmt.Errorf("%w: step %d has unknown action '%s'", simulator.ErrSimulation, i, s.Action))
		}
	}

	if c := d.Customers; c != nil {
		switch c.Pattern {
		case UniformPattern:
			if c.Count < 0 {
				result = multierror.Append(result, fmt.Errorf("%w: customer count must not be negative", simulator.ErrSimulation))
			}
		case RampPattern:
			if c.DeltaV <= 0 || c.MaxPerInterval <= 0 || c.Interval <= 0 {
				result = multierror.Append(result, fmt.Errorf("%w: ramp needs positive deltaV, maxPerInterval and interval", simulator.ErrSimulation))
			}
		case StepPattern:
			if c.PerInterval < 0 || c.StepAfter < 0 || c.Interval <= 0 {
				result = multierror.Append(result, fmt.Errorf("%w: step needs a positive interval and no negative perInterval or stepAfter", simulator.ErrSimulation))
			}
		case SinusoidalPattern:
			if c.Amplitude < 0 || c.Period <= 0 || c.Interval <= 0 {
				result = multierror.Append(result, fmt.Errorf("%w: sinusoidal needs a positive period and interval and no negative amplitude", simulator.ErrSimulation))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("%w: unknown customer pattern '%s'", simulator.ErrSimulation, c.Pattern))
		}
	}

	return result.ErrorOrNil()
}

// Parse decodes and validates a YAML scenario. Unknown fields are errors.
func Parse(data []byte) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	doc := &Document{}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: could not parse scenario: %w", simulator.ErrSimulation, err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario '%s': %w", doc.Name, err)
	}

	return doc, nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scenario: %w", err)
	}
	return Parse(data)
}

// DefaultDocument is the scenario used when none is given.
func DefaultDocument() *Document {
	doc, err := Parse([]byte(defaultScenario))
	if err != nil {
		panic(fmt.Errorf("default scenario is invalid: %s", err.Error()))
	}
	return doc
}

var defaultScenario = `
name: default
duration: 10m
machine:
  coinKinds: [5, 10, 25, 100, 200]
  selectionButtonCount: 6
  coinRackCapacity: 200
  popCanRackCapacity: 10
  receptacleCapacity: 200
products:
  - {name: Coke, cost: 250}
  - {name: Sprite, cost: 250}
  - {name: Crush, cost: 250}
  - {name: Ale, cost: 250}
  - {name: Pepsi, cost: 250}
  - {name: Diet Pepsi, cost: 250}
stock:
  coins: [10, 10, 10, 5, 5]
  popCans: [5, 5, 5, 5, 5, 5]
customers:
  pattern: uniform
  count: 10
  pace: 2s
steps:
  - {at: 5m, action: enable_safety}
  - {at: 6m, action: disable_safety}
`
