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

// language=sql
var Schema = `create table if not exists scenario_runs
(
    id                      integer primary key, -- aliases to rowid
    uid                     text        not null,

    recorded                text        not null,
    scenario_name           text        not null,
    simulated_duration      big integer not null,
    origin                  text        not null,
    traffic_pattern         text        not null,

    coin_kinds              text        not null,
    selection_button_count  integer     not null,
    coin_rack_capacity      integer     not null,
    pop_can_rack_capacity   integer     not null,
    receptacle_capacity     integer     not null,
    delivery_chute_capacity integer     not null,
    storage_bin_capacity    integer     not null,

    final_balance           integer     not null
);
create unique index if not exists scenario_runs_uid on scenario_runs (uid);

create table if not exists devices
(
    id   integer primary key, -- aliases to rowid
    name text not null
);
create unique index if not exists devices_names on devices (name);

create table if not exists completed_steps
(
    id              integer primary key,  -- aliases to rowid
    occurs_at       unsigned big integer, -- unsigned int to avoid being an alias to rowid
    kind            text    not null,
    notes           text    not null,

    scenario_run_id integer not null references scenario_runs (id)
);
create unique index if not exists complete_once_per_run on completed_steps (occurs_at, scenario_run_id);

create table if not exists ignored_steps
(
    id              integer primary key,  -- aliases to rowid
    occurs_at       unsigned big integer, -- unsigned int to avoid being an alias to rowid
    kind            text    not null,
    reason          text    not null,
    error           text,

    scenario_run_id integer not null references scenario_runs (id)
);

create table if not exists device_events
(
    id              integer primary key,  -- aliases to rowid
    occurs_at       unsigned big integer,
    device          integer not null references devices (id),
    name            text    not null,
    detail          text    not null,

    scenario_run_id integer not null references scenario_runs (id)
);

create table if not exists leftover_stock
(
    id              integer primary key, -- aliases to rowid
    location        text    not null,
    item            text    not null,
    count           integer not null,

    scenario_run_id integer not null references scenario_runs (id)
);
`
