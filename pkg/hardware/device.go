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

type Device interface {
	Name() string
	Enable()
	Disable()
	IsDisabled() bool
}

// HardwareListener is the part of every device's listener contract that
// hears about enable and disable.
type HardwareListener interface {
	Enabled(device Device)
	Disabled(device Device)
}

type listenerConstraint interface {
	comparable
	HardwareListener
}

// hardware holds the bookkeeping shared by all devices. Listeners are
// notified in registration order; a listener registered twice hears every
// event twice.
type hardware[L listenerConstraint] struct {
	name      string
	disabled  bool
	listeners []L
	self      Device
}

func (h *hardware[L]) init(self Device, name string) {
	h.self = self
	h.name = name
	h.listeners = make([]L, 0)
}

func (h *hardware[L]) Name() string {
	return h.name
}

func (h *hardware[L]) IsDisabled() bool {
	return h.disabled
}

func (h *hardware[L]) Enable() {
	h.setDisabled(false)
	h.announceState()
}

func (h *hardware[L]) Disable() {
	h.setDisabled(true)
	h.announceState()
}

// switchable devices can be flipped quietly and announced later, so a group
// of them can change state together before any listener hears about it.
type switchable interface {
	Device
	setDisabled(disabled bool)
	announceState()
}

func (h *hardware[L]) setDisabled(disabled bool) {
	h.disabled = disabled
}

func (h *hardware[L]) announceState() {
	if h.disabled {
		h.notify(func(l L) { l.Disabled(h.self) })
	} else {
		h.notify(func(l L) { l.Enabled(h.self) })
	}
}

func (h *hardware[L]) Register(listener L) {
	h.listeners = append(h.listeners, listener)
}

// Deregister removes the first registration of listener and reports
// whether there was one.
func (h *hardware[L]) Deregister(listener L) bool {
	for i, l := range h.listeners {
		if l == listener {
			h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (h *hardware[L]) DeregisterAll() {
	h.listeners = make([]L, 0)
}

func (h *hardware[L]) Listeners() []L {
	listeners := make([]L, len(h.listeners))
	copy(listeners, h.listeners)
	return listeners
}

// notify iterates over a snapshot, so listeners may deregister themselves
// while being notified.
func (h *hardware[L]) notify(event func(l L)) {
	for _, l := range h.Listeners() {
		event(l)
	}
}
