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

package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingsim/pkg/hardware"
	"vendingsim/pkg/scenario"
)

func TestRunStore(t *testing.T) {
	spec.Run(t, "RunStore", testStorer, spec.Report(report.Terminal{}))
}

func testStorer(t *testing.T, describe spec.G, it spec.S) {
	var subject RunStore
	var result *scenario.Result

	it.Before(func() {
		var err error
		result, err = scenario.Run(context.Background(), &scenario.Document{
			Name:     "store test",
			Duration: 10 * time.Minute,
			Machine: hardware.Config{
				CoinKinds:            []int{5, 10, 25},
				SelectionButtonCount: 2,
				CoinRackCapacity:     10,
				PopCanRackCapacity:   5,
				ReceptacleCapacity:   10,
			},
			Products: []scenario.Product{{Name: "Coke", Cost: 35}, {Name: "Water", Cost: 10}},
			Stock:    scenario.Stock{Coins: []int{1, 1, 1}, PopCans: []int{2, 0}},
			Steps: []scenario.StepSpec{
				{At: 1 * time.Second, Action: scenario.InsertCoin, Value: 25},
				{At: 2 * time.Second, Action: scenario.InsertCoin, Value: 10},
				{At: 3 * time.Second, Action: scenario.PressButton, Index: 0},
				{At: 4 * time.Second, Action: scenario.DispensePopCan, Index: 1},
				{At: 20 * time.Minute, Action: scenario.OpenChute},
			},
		})
		require.NoError(t, err)
	})

	describe("Store()", func() {
		var conn *sqlite3.Conn
		var scenarioRunId int64
		var err error

		it.Before(func() {
			var dir string
			dir, err = os.Getwd()
			require.NoError(t, err)
			dbPath := filepath.Join(dir, "vendingsim_test.db")

			os.Remove(dbPath)

			conn, err = sqlite3.Open(dbPath)
			assert.NoError(t, err)
			assert.NotNil(t, conn)

			subject = NewRunStore(conn)

			scenarioRunId, err = subject.Store(result, "test_origin")
			assert.NoError(t, err)
		})

		it.After(func() {
			assert.NoError(t, conn.Close())
		})

		it("returns the scenario_run ID", func() {
			assert.Equal(t, int64(1), scenarioRunId)
		})

		describe("scenario run metadata", func() {
			var uid, recorded, name, origin, trafficPattern string
			var ranFor int64
			var count int

			it.Before(func() {
				singleQuery(t, conn, `select uid, recorded, scenario_name, simulated_duration, origin, traffic_pattern from scenario_runs`, &uid, &recorded, &name, &ranFor, &origin, &trafficPattern)
				singleQuery(t, conn, `select count(1) from scenario_runs`, &count)
			})

			it("inserts a record", func() {
				assert.Equal(t, 1, count)
			})

			it("records the run's UID", func() {
				assert.Equal(t, result.UID.String(), uid)
			})

			it("records a timestamp", func() {
				assert.Contains(t, recorded, time.Now().Format("2006-01-02"))
			})

			it("sets the simulated_duration as 10 minutes", func() {
				assert.Equal(t, 10*time.Minute, time.Duration(ranFor))
			})

			it("sets the scenario name, origin and traffic pattern", func() {
				assert.Equal(t, "store test", name)
				assert.Equal(t, "test_origin", origin)
				assert.Equal(t, "none", trafficPattern)
			})
		})

		describe("machine configuration", func() {
			var coinKinds string
			var buttons, chute, bin int

			it.Before(func() {
				singleQuery(t, conn, `select coin_kinds, selection_button_count, delivery_chute_capacity, storage_bin_capacity from scenario_runs`, &coinKinds, &buttons, &chute, &bin)
			})

			it("records the coin kinds", func() {
				assert.Equal(t, "5,10,25", coinKinds)
			})

			it("records the defaulted capacities", func() {
				assert.Equal(t, 2, buttons)
				assert.Equal(t, 10, chute)
				assert.Equal(t, 10, bin)
			})
		})

		describe("completed step records", func() {
			var count, occursAt int
			var kind string

			it.Before(func() {
				singleQuery(t, conn, `select count(1) from completed_steps`, &count)
				singleQuery(t, conn, `select occurs_at, kind from completed_steps order by occurs_at limit 1`, &occursAt, &kind)
			})

			it("inserts the start, halt and scripted steps", func() {
				assert.Equal(t, 5, count)
			})

			it("inserts the start of the scenario first", func() {
				assert.Equal(t, 0, occursAt)
				assert.Equal(t, "start_scenario", kind)
			})
		})

		describe("ignored step records", func() {
			var kind, reason, errText string

			it.Before(func() {
				singleQuery(t, conn, `select kind, reason, error from ignored_steps where kind = 'dispense_pop_can'`, &kind, &reason, &errText)
			})

			it("inserts a reason for why the step was ignored", func() {
				assert.Equal(t, "StockEmpty", reason)
			})

			it("inserts the error", func() {
				assert.NotEmpty(t, errText)
			})

			it("summarises the reasons", func() {
				reasons, err := IgnoredReasons(conn, scenarioRunId)
				require.NoError(t, err)
				assert.Equal(t, 1, reasons["StockEmpty"])
				assert.Equal(t, 1, reasons["ScheduledToOccurAfterHalt"])
			})
		})

		describe("device event records", func() {
			var count, stored int

			it.Before(func() {
				singleQuery(t, conn, `select count(1) from devices`, &count)
				singleQuery(t, conn, `select count(1) from device_events`, &stored)
			})

			it("inserts each device once", func() {
				assert.Less(t, 0, count)
				assert.LessOrEqual(t, count, 19)
			})

			it("inserts every event", func() {
				assert.Equal(t, len(result.Events), stored)
			})

			it("tallies the events", func() {
				counts, err := EventCounts(conn, scenarioRunId)
				require.NoError(t, err)
				assert.Contains(t, counts, EventCount{Device: "CoinSlot", Event: "validCoinInserted", Occurrences: 2})
			})

			it("finds the sales", func() {
				sales, err := Sales(conn, scenarioRunId)
				require.NoError(t, err)
				require.Len(t, sales, 1)
				assert.Equal(t, "Coke", sales[0].Pop)
				assert.Equal(t, 1, sales[0].Sold)
				assert.Equal(t, scenario.StartAt.Add(3*time.Second).UnixNano(), sales[0].FirstSoldAt)
			})
		})

		describe("leftover stock records", func() {
			var cans int

			it.Before(func() {
				singleQuery(t, conn, `select count from leftover_stock where location = 'PopCanRack-0' and item = 'Coke'`, &cans)
			})

			it("records what was not sold", func() {
				assert.Equal(t, 1, cans)
			})
		})
	})
}

func singleQuery(t *testing.T, conn *sqlite3.Conn, sql string, scanDst ...interface{}) {
	selectStmt, err := conn.Prepare(sql)
	require.NoError(t, err)

	hasResult, err := selectStmt.Step()
	require.True(t, hasResult)
	require.NoError(t, err)

	err = selectStmt.Scan(scanDst...)
	require.NoError(t, err)

	err = selectStmt.Close()
	require.NoError(t, err)
}
