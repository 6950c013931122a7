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

import "errors"

var (
	// ErrCapacityExceeded is returned when an entity is added to a full stock.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrDisabled is returned when a disabled device is asked to move an entity.
	ErrDisabled = errors.New("device is disabled")
	// ErrEmpty is returned when an entity is removed from an empty stock.
	ErrEmpty = errors.New("stock is empty")
	// ErrSimulation marks configuration defects and internal inconsistencies.
	// These are not expected to be recovered from.
	ErrSimulation = errors.New("simulation error")
)
