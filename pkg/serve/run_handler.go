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

package serve

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"vendingsim/pkg/data"
	"vendingsim/pkg/logging"
	"vendingsim/pkg/scenario"
)

const maxScenarioBytes = 1 << 20

type stepLine struct {
	OccursAt int64    `json:"occurs_at"`
	Kind     string   `json:"kind"`
	Notes    []string `json:"notes,omitempty"`
}

type ignoredLine struct {
	stepLine
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

type RunResponse struct {
	*scenario.Result
	Completed     []stepLine    `json:"completed"`
	Ignored       []ignoredLine `json:"ignored"`
	ScenarioRunID int64         `json:"scenario_run_id,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type runHandler struct {
	dbPath string
	logger *zap.SugaredLogger
}

// ServeHTTP runs the scenario in the request body on a fresh machine. An
// empty body runs the default scenario. With ?store=true the run is also
// written to the database.
func (rh *runHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScenarioBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	doc := scenario.DefaultDocument()
	if len(body) > 0 {
		doc, err = scenario.Parse(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	store := r.URL.Query().Get("store") == "true"
	if store && rh.dbPath == "" {
		http.Error(w, "this server does not store runs", http.StatusBadRequest)
		return
	}

	ctx := logging.WithLogger(r.Context(), rh.logger)
	result, runErr := scenario.Run(ctx, doc)
	if result == nil {
		http.Error(w, runErr.Error(), http.StatusBadRequest)
		return
	}

	response := newRunResponse(result)
	status := http.StatusOK
	if runErr != nil {
		response.Error = runErr.Error()
		status = http.StatusUnprocessableEntity
	}

	if store {
		response.ScenarioRunID, err = rh.store(result)
		if err != nil {
			rh.logger.Errorw("there was an error saving data", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		rh.logger.Warnw("could not write response", "error", err)
	}
}

func (rh *runHandler) store(result *scenario.Result) (int64, error) {
	conn, err := sqlite3.Open(rh.dbPath)
	if err != nil {
		return -1, err
	}
	defer conn.Close()

	return data.NewRunStore(conn).Store(result, "vendingsim_web")
}

func newRunResponse(result *scenario.Result) *RunResponse {
	response := &RunResponse{
		Result:    result,
		Completed: make([]stepLine, 0, len(result.Completed)),
		Ignored:   make([]ignoredLine, 0, len(result.Ignored)),
	}

	for _, cs := range result.Completed {
		response.Completed = append(response.Completed, stepLine{
			OccursAt: cs.Step.OccursAt().UnixNano(),
			Kind:     string(cs.Step.Kind()),
			Notes:    cs.Step.Notes(),
		})
	}

	for _, is := range result.Ignored {
		line := ignoredLine{
			stepLine: stepLine{
				OccursAt: is.Step.OccursAt().UnixNano(),
				Kind:     string(is.Step.Kind()),
				Notes:    is.Step.Notes(),
			},
			Reason: is.Reason,
		}
		if is.Err != nil {
			line.Error = is.Err.Error()
		}
		response.Ignored = append(response.Ignored, line)
	}

	return response
}

// DefaultScenarioHandler writes the default scenario as YAML, as a starting
// point for editing.
func DefaultScenarioHandler(w http.ResponseWriter, r *http.Request) {
	out, err := yaml.Marshal(scenario.DefaultDocument())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(out); err != nil {
		logging.FromContext(r.Context()).Warnw("could not write default scenario", "error", err)
	}
}
