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
	"fmt"
	"strings"
	"time"

	"github.com/bvinc/go-sqlite-lite/sqlite3"

	"vendingsim/pkg/scenario"
	"vendingsim/pkg/simulator"
)

type RunStore interface {
	Store(result *scenario.Result, origin string) (scenarioRunId int64, err error)
}

type storer struct {
	conn   *sqlite3.Conn
	result *scenario.Result
	origin string
}

func (s *storer) Store(result *scenario.Result, origin string) (scenarioRunId int64, err error) {
	s.result = result
	s.origin = origin

	scenarioRunId, err = s.scenarioRun()
	if err != nil {
		return scenarioRunId, err
	}

	err = s.conn.WithTx(func() error {
		return s.scenarioData(scenarioRunId)
	})
	if err != nil {
		return scenarioRunId, err
	}

	return scenarioRunId, nil
}

func (s *storer) scenarioRun() (scenarioRunId int64, err error) {
	srStmt, err := s.conn.Prepare(`insert into scenario_runs(
									   uid
									 , recorded
									 , scenario_name
									 , simulated_duration
									 , origin
									 , traffic_pattern
									 , coin_kinds
									 , selection_button_count
									 , coin_rack_capacity
									 , pop_can_rack_capacity
									 , receptacle_capacity
									 , delivery_chute_capacity
									 , storage_bin_capacity
									 , final_balance)
									values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return -1, err
	}
	defer srStmt.Close()

	conf := s.result.Config
	kinds := make([]string, 0, len(conf.CoinKinds))
	for _, k := range conf.CoinKinds {
		kinds = append(kinds, fmt.Sprintf("%d", k))
	}

	err = srStmt.Exec(
		s.result.UID.String(),
		time.Now().Format(time.RFC3339),
		s.result.Name,
		s.result.RanFor.Nanoseconds(),
		s.origin,
		s.result.TrafficPattern,
		strings.Join(kinds, ","),
		conf.SelectionButtonCount,
		conf.CoinRackCapacity,
		conf.PopCanRackCapacity,
		conf.ReceptacleCapacity,
		conf.DeliveryChuteCapacity,
		conf.StorageBinCapacity,
		s.result.Balance,
	)
	if err != nil {
		return -1, err
	}

	return s.conn.LastInsertRowID(), nil
}

func (s *storer) scenarioData(scenarioRunId int64) error {
	completedStmt, err := s.conn.Prepare(`insert into completed_steps(occurs_at, kind, notes, scenario_run_id) values (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer completedStmt.Close()

	for _, cs := range s.result.Completed {
		err = completedStmt.Exec(
			cs.Step.OccursAt().UnixNano(),
			string(cs.Step.Kind()),
			strings.Join(cs.Step.Notes(), "; "),
			scenarioRunId,
		)
		if err != nil {
			return err
		}
	}

	ignoredStmt, err := s.conn.Prepare(`insert into ignored_steps(occurs_at, kind, reason, error, scenario_run_id) values (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ignoredStmt.Close()

	for _, is := range s.result.Ignored {
		err = ignoredStmt.Exec(
			is.Step.OccursAt().UnixNano(),
			string(is.Step.Kind()),
			is.Reason,
			errorText(is),
			scenarioRunId,
		)
		if err != nil {
			return err
		}
	}

	deviceStmt, err := s.conn.Prepare(`insert into devices(name) values (?) on conflict do nothing`)
	if err != nil {
		return err
	}
	defer deviceStmt.Close()

	eventStmt, err := s.conn.Prepare(`insert into device_events(
		occurs_at
	  , device
	  , name
	  , detail
	  , scenario_run_id
	) values (
		?
	  , (select id from devices where name = ?)
	  , ?
	  , ?
	  , ?)
	`)
	if err != nil {
		return err
	}
	defer eventStmt.Close()

	for _, ev := range s.result.Events {
		err = deviceStmt.Exec(ev.Device)
		if err != nil {
			return err
		}

		err = eventStmt.Exec(ev.OccursAt.UnixNano(), ev.Device, ev.Name, ev.Detail, scenarioRunId)
		if err != nil {
			return err
		}
	}

	return s.leftovers(scenarioRunId)
}

func (s *storer) leftovers(scenarioRunId int64) error {
	leftoverStmt, err := s.conn.Prepare(`insert into leftover_stock(location, item, count, scenario_run_id) values (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer leftoverStmt.Close()

	insert := func(location string, counts map[string]int) error {
		for item, count := range counts {
			if err := leftoverStmt.Exec(location, item, count, scenarioRunId); err != nil {
				return err
			}
		}
		return nil
	}

	contents := s.result.Contents
	for i, coins := range contents.UnusedCoinsForChange {
		counts := make(map[string]int)
		for _, c := range coins {
			counts[string(c.Name())]++
		}
		if err := insert(fmt.Sprintf("CoinRack-%d", s.result.Config.CoinKinds[i]), counts); err != nil {
			return err
		}
	}

	for i, cans := range contents.UnsoldPopCans {
		counts := make(map[string]int)
		for _, c := range cans {
			counts[string(c.Name())]++
		}
		if err := insert(fmt.Sprintf("PopCanRack-%d", i), counts); err != nil {
			return err
		}
	}

	counts := make(map[string]int)
	for _, c := range contents.PaymentCoinsInStorageBin {
		counts[string(c.Name())]++
	}
	return insert("StorageBin", counts)
}

func errorText(is simulator.IgnoredStep) interface{} {
	if is.Err == nil {
		return nil
	}
	return is.Err.Error()
}

func NewRunStore(conn *sqlite3.Conn) RunStore {
	err := conn.Exec(Schema)
	if err != nil {
		panic(fmt.Errorf("could not apply vendingsim schema: %s", err.Error()))
	}

	return &storer{
		conn: conn,
	}
}
