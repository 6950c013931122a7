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

type IndicatorLightListener interface {
	HardwareListener
	Activated(light *IndicatorLight)
	Deactivated(light *IndicatorLight)
}

type IndicatorLight struct {
	hardware[IndicatorLightListener]

	active bool
}

func (il *IndicatorLight) IsActive() bool {
	return il.active
}

func (il *IndicatorLight) Activate() {
	il.active = true
	il.announceLit()
}

func (il *IndicatorLight) Deactivate() {
	il.active = false
	il.announceLit()
}

func (il *IndicatorLight) announceLit() {
	if il.active {
		il.notify(func(l IndicatorLightListener) { l.Activated(il) })
	} else {
		il.notify(func(l IndicatorLightListener) { l.Deactivated(il) })
	}
}

func NewIndicatorLight(name string) *IndicatorLight {
	il := &IndicatorLight{}
	il.init(il, name)
	return il
}

type LockListener interface {
	HardwareListener
	Locked(lock *Lock)
	Unlocked(lock *Lock)
}

type Lock struct {
	hardware[LockListener]

	locked bool
}

func (lk *Lock) IsLocked() bool {
	return lk.locked
}

func (lk *Lock) Lock() {
	lk.locked = true
	lk.notify(func(l LockListener) { l.Locked(lk) })
}

func (lk *Lock) Unlock() {
	lk.locked = false
	lk.notify(func(l LockListener) { l.Unlocked(lk) })
}

func NewLock(name string) *Lock {
	lk := &Lock{}
	lk.init(lk, name)
	return lk
}

type DisplayListener interface {
	HardwareListener
	MessageChange(display *Display, oldMessage, newMessage string)
}

type Display struct {
	hardware[DisplayListener]

	message string
}

func (d *Display) Message() string {
	return d.message
}

func (d *Display) Display(message string) {
	old := d.message
	d.message = message
	d.notify(func(l DisplayListener) { l.MessageChange(d, old, message) })
}

func NewDisplay(name string) *Display {
	d := &Display{}
	d.init(d, name)
	return d
}

type SelectionButtonListener interface {
	HardwareListener
	Pressed(button *SelectionButton)
}

// SelectionButton can be pressed even while disabled; it moves nothing.
type SelectionButton struct {
	hardware[SelectionButtonListener]

	index int
}

func (sb *SelectionButton) Index() int {
	return sb.index
}

func (sb *SelectionButton) Press() {
	sb.notify(func(l SelectionButtonListener) { l.Pressed(sb) })
}

func NewSelectionButton(name string, index int) *SelectionButton {
	sb := &SelectionButton{index: index}
	sb.init(sb, name)
	return sb
}
