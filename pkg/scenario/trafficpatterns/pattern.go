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

package trafficpatterns

import (
	"time"

	"vendingsim/pkg/simulator"
)

const CustomerArrives simulator.StepKind = "customer_arrives"

// Arrival is what happens when a customer walks up to the machine. It is
// performed at the arrival time and may schedule further steps.
type Arrival func(at time.Time) error

type Pattern interface {
	Name() string
	Generate()
}

func scheduleArrival(env simulator.Environment, at time.Time, arrive Arrival) {
	env.AddToSchedule(simulator.NewStep(CustomerArrives, at, func() error {
		return arrive(at)
	}))
}
