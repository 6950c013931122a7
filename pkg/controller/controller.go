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

package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/logging"
)

// Controller is the purchase logic that sits outside the hardware. It
// keeps a balance from valid coins and, when a selection is pressed with
// enough credit, dispenses the pop and stores the payment.
type Controller struct {
	machine *hardware.VendingMachine
	logger  *zap.SugaredLogger

	balance int
	lastErr error
}

func (c *Controller) Balance() int {
	return c.balance
}

// LastError is the most recent failure while reacting to an event. The
// hardware calls back into the controller, so there is nobody to return it
// to.
func (c *Controller) LastError() error {
	return c.lastErr
}

func (c *Controller) credit(coin hardware.Coin) {
	c.balance += coin.Value()
	c.logger.Debugw("credited coin", "value", coin.Value(), "balance", c.balance)
	c.machine.Display().Display(fmt.Sprintf("Credit: %d", c.balance))
}

func (c *Controller) selected(index int) {
	cost := c.machine.PopKindCost(index)
	name := c.machine.PopKindName(index)

	if c.balance < cost {
		c.logger.Debugw("insufficient credit", "selection", index, "cost", cost, "balance", c.balance)
		c.machine.Display().Display(fmt.Sprintf("Price: %d", cost))
		return
	}

	if err := c.machine.DispensePopCan(index); err != nil {
		c.fail("dispense failed", err, "selection", index, "pop", name)
		return
	}
	c.balance -= cost

	if err := c.machine.CoinReceptacle().StoreCoins(); err != nil {
		c.fail("storing payment failed", err, "selection", index)
		return
	}

	c.logger.Infow("sold pop", "selection", index, "pop", name, "cost", cost, "balance", c.balance)
	c.machine.Display().Display(fmt.Sprintf("Enjoy your %s", name))
}

func (c *Controller) fail(msg string, err error, keysAndValues ...interface{}) {
	c.lastErr = err
	c.logger.Warnw(msg, append(keysAndValues, "error", err)...)
}

type slotListener struct {
	c *Controller
}

func (sl *slotListener) Enabled(device hardware.Device) {
	sl.c.logger.Debugw("enabled", "device", device.Name())
}

func (sl *slotListener) Disabled(device hardware.Device) {
	sl.c.logger.Debugw("disabled", "device", device.Name())
}

func (sl *slotListener) ValidCoinInserted(slot *hardware.CoinSlot, coin hardware.Coin) {
	sl.c.credit(coin)
}

func (sl *slotListener) CoinRejected(slot *hardware.CoinSlot, coin hardware.Coin) {
	sl.c.logger.Debugw("coin rejected", "value", coin.Value())
}

type buttonListener struct {
	c *Controller
}

func (bl *buttonListener) Enabled(device hardware.Device) {}

func (bl *buttonListener) Disabled(device hardware.Device) {}

func (bl *buttonListener) Pressed(button *hardware.SelectionButton) {
	bl.c.selected(button.Index())
}

// New attaches a controller to every coin slot and selection button event of
// the machine.
func New(ctx context.Context, machine *hardware.VendingMachine) *Controller {
	c := &Controller{
		machine: machine,
		logger:  logging.FromContext(ctx).Named("controller"),
	}

	machine.CoinSlot().Register(&slotListener{c: c})
	buttons := &buttonListener{c: c}
	for i := 0; i < machine.NumberOfSelectionButtons(); i++ {
		machine.SelectionButton(i).Register(buttons)
	}

	return c
}
