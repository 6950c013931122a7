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
var EventCountsQuery = `
select
    d.name as device
  , e.name as event
  , count(1) as occurrences
from device_events e join devices d on d.id = e.device
where e.scenario_run_id = ?
group by d.name, e.name
order by d.name asc, e.name asc
;
`

// language=sql
var SalesQuery = `
select
    substr(detail, length('PopCan ') + 1) as pop
  , count(1) as sold
  , min(occurs_at) as first_sold_at
from device_events
where device = (select id from devices where name = 'DeliveryChute')
  and name = 'itemDelivered'
  and detail like 'PopCan %'
  and scenario_run_id = ?
group by pop
order by pop asc
;
`

// language=sql
var IgnoredReasonsQuery = `
select
    reason
  , count(1) as ignored
from ignored_steps
where scenario_run_id = ?
group by reason
order by ignored desc, reason asc
;
`
