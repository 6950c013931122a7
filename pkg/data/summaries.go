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
	"github.com/bvinc/go-sqlite-lite/sqlite3"
)

type EventCount struct {
	Device      string
	Event       string
	Occurrences int
}

type Sale struct {
	Pop         string
	Sold        int
	FirstSoldAt int64
}

// EventCounts tallies the stored device events of one run.
func EventCounts(conn *sqlite3.Conn, scenarioRunId int64) ([]EventCount, error) {
	counts := make([]EventCount, 0)
	err := query(conn, EventCountsQuery, scenarioRunId, func(stmt *sqlite3.Stmt) error {
		var ec EventCount
		if err := stmt.Scan(&ec.Device, &ec.Event, &ec.Occurrences); err != nil {
			return err
		}
		counts = append(counts, ec)
		return nil
	})
	return counts, err
}

func Sales(conn *sqlite3.Conn, scenarioRunId int64) ([]Sale, error) {
	sales := make([]Sale, 0)
	err := query(conn, SalesQuery, scenarioRunId, func(stmt *sqlite3.Stmt) error {
		var s Sale
		if err := stmt.Scan(&s.Pop, &s.Sold, &s.FirstSoldAt); err != nil {
			return err
		}
		sales = append(sales, s)
		return nil
	})
	return sales, err
}

func IgnoredReasons(conn *sqlite3.Conn, scenarioRunId int64) (map[string]int, error) {
	reasons := make(map[string]int)
	err := query(conn, IgnoredReasonsQuery, scenarioRunId, func(stmt *sqlite3.Stmt) error {
		var reason string
		var count int
		if err := stmt.Scan(&reason, &count); err != nil {
			return err
		}
		reasons[reason] = count
		return nil
	})
	return reasons, err
}

func query(conn *sqlite3.Conn, sql string, scenarioRunId int64, row func(stmt *sqlite3.Stmt) error) error {
	stmt, err := conn.Prepare(sql, scenarioRunId)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return err
		}
		if !hasRow {
			return nil
		}
		if err := row(stmt); err != nil {
			return err
		}
	}
}
