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
	"reflect"

	"vendingsim/pkg/simulator"
)

type CoinAcceptor interface {
	AcceptCoin(coin Coin) error
	HasSpace() bool
}

type PopCanAcceptor interface {
	AcceptPopCan(can PopCan) error
	HasSpace() bool
}

// CoinChannel is a one-way link that forwards coins to a single sink. It
// stores nothing itself.
type CoinChannel struct {
	sink CoinAcceptor
}

func (cc *CoinChannel) Deliver(coin Coin) error {
	if cc == nil || cc.sink == nil {
		return fmt.Errorf("%w: coin channel has no sink for %s", simulator.ErrSimulation, coin)
	}
	return cc.sink.AcceptCoin(coin)
}

func (cc *CoinChannel) HasSpace() bool {
	if cc == nil || cc.sink == nil {
		return false
	}
	return cc.sink.HasSpace()
}

// Connect replaces the sink. A nil pointer counts as no sink at all.
func (cc *CoinChannel) Connect(sink CoinAcceptor) {
	if isNilSink(sink) {
		sink = nil
	}
	cc.sink = sink
}

func (cc *CoinChannel) Sink() CoinAcceptor {
	return cc.sink
}

func NewCoinChannel(sink CoinAcceptor) *CoinChannel {
	cc := &CoinChannel{}
	cc.Connect(sink)
	return cc
}

type PopCanChannel struct {
	sink PopCanAcceptor
}

func (pc *PopCanChannel) Deliver(can PopCan) error {
	if pc == nil || pc.sink == nil {
		return fmt.Errorf("%w: pop can channel has no sink for %s", simulator.ErrSimulation, can)
	}
	return pc.sink.AcceptPopCan(can)
}

func (pc *PopCanChannel) HasSpace() bool {
	if pc == nil || pc.sink == nil {
		return false
	}
	return pc.sink.HasSpace()
}

func (pc *PopCanChannel) Connect(sink PopCanAcceptor) {
	if isNilSink(sink) {
		sink = nil
	}
	pc.sink = sink
}

func (pc *PopCanChannel) Sink() PopCanAcceptor {
	return pc.sink
}

func NewPopCanChannel(sink PopCanAcceptor) *PopCanChannel {
	pc := &PopCanChannel{}
	pc.Connect(sink)
	return pc
}

// isNilSink catches a typed nil, such as a (*CoinRack)(nil), which would
// otherwise pass a plain nil check and panic on first use.
func isNilSink(sink interface{}) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
