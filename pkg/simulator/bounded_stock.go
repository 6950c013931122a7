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

package simulator

import "fmt"

type boundedStock struct {
	name       StockName
	stocksKind EntityKind
	capacity   uint64

	stock []Entity
}

func (bs *boundedStock) Name() StockName {
	return bs.name
}

func (bs *boundedStock) KindStocked() EntityKind {
	return bs.stocksKind
}

func (bs *boundedStock) Count() uint64 {
	return uint64(len(bs.stock))
}

func (bs *boundedStock) Capacity() uint64 {
	return bs.capacity
}

func (bs *boundedStock) HasSpace() bool {
	return bs.Count() < bs.capacity
}

// EntitiesInStock returns a copy of the contents, head first.
func (bs *boundedStock) EntitiesInStock() []Entity {
	entities := make([]Entity, len(bs.stock))
	copy(entities, bs.stock)
	return entities
}

func (bs *boundedStock) Add(entity Entity) error {
	if entity == nil {
		return fmt.Errorf("could not add Entity, as it was nil")
	}

	if bs.stocksKind != AnyKind && entity.Kind() != bs.KindStocked() {
		return fmt.Errorf(
			"stock '%s' could not stock entity '%s'; stock accepts '%s' but kind is '%s'",
			bs.Name(),
			entity.Name(),
			bs.KindStocked(),
			entity.Kind(),
		)
	}

	if !bs.HasSpace() {
		return fmt.Errorf("stock '%s' could not stock entity '%s': %w", bs.Name(), entity.Name(), ErrCapacityExceeded)
	}

	bs.stock = append(bs.stock, entity)
	return nil
}

func (bs *boundedStock) Remove() Entity {
	if bs.Count() == 0 {
		return nil
	}

	var e Entity
	e, bs.stock = bs.stock[0], bs.stock[1:]
	return e
}

func (bs *boundedStock) Drain() []Entity {
	drained := bs.stock
	bs.stock = nil
	return drained
}

// Constructors

func NewBoundedStock(name StockName, stocks EntityKind, capacity int) (ThroughStock, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity of stock '%s' must be positive: %d", ErrSimulation, name, capacity)
	}

	return &boundedStock{
		name:       name,
		stocksKind: stocks,
		capacity:   uint64(capacity),
		stock:      make([]Entity, 0, capacity),
	}, nil
}
