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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type VendingServer struct {
	Addr string
	// DBPath is where stored runs go. Runs cannot be stored when it is empty.
	DBPath string
	Logger *zap.SugaredLogger

	srv *http.Server
}

func (vs *VendingServer) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.NoCache)
	router.Use(middleware.DefaultCompress)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	runs := &runHandler{dbPath: vs.DBPath, logger: vs.logger().Named("run")}
	router.Post("/run", runs.ServeHTTP)
	router.Get("/scenario/default", DefaultScenarioHandler)

	return router
}

func (vs *VendingServer) Serve() {
	addr := vs.Addr
	if addr == "" {
		addr = "0.0.0.0:3000"
	}

	vs.srv = &http.Server{
		Addr:    addr,
		Handler: vs.Router(),
	}

	go func() {
		vs.logger().Infow("listening", "addr", addr)
		if err := vs.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			vs.logger().Fatalw("server failed", "error", err)
		}
	}()
}

func (vs *VendingServer) Shutdown() {
	vs.logger().Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := vs.srv.Shutdown(ctx); err != nil {
		vs.logger().Fatalw("shutdown error", "error", err)
	}

	vs.logger().Infow("done")
}

func (vs *VendingServer) logger() *zap.SugaredLogger {
	if vs.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return vs.Logger
}
