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

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vendingsim/pkg/data"
	"vendingsim/pkg/logging"
	"vendingsim/pkg/scenario"
	"vendingsim/pkg/simulator"
)

var (
	startRunning      = time.Now()
	au                = aurora.NewAurora(true)
	scenarioPath      = flag.String("scenario", "", "Path to a scenario YAML file. The default scenario is used if empty.")
	simDuration       = flag.Duration("duration", 0, "Duration of time to simulate. Overrides the scenario's duration when set.")
	numberOfCustomers = flag.Int("customers", -1, "Number of randomly-arriving customers. Overrides the scenario's count when not negative.")
	seed              = flag.Int64("seed", 0, "Seed for customer arrivals and selections. Overrides the scenario's seed when not zero.")
	showTrace         = flag.Bool("showTrace", true, "Show simulation trace")
	storeRun          = flag.Bool("storeRun", true, "Store simulation run results in the database")
	dbPath            = flag.String("db", "vendingsim.db", "Path of the sqlite database that runs are stored in")
	debug             = flag.Bool("debug", false, "Include debug output in the log")
)

func main() {
	flag.Parse()

	r, err := NewRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load scenario: %s\n", err.Error())
		os.Exit(2)
	}

	fmt.Print("Running simulation ... ")

	result, runErr := r.Run()
	if result == nil {
		fmt.Printf("there was an error during simulation: %s\n", runErr.Error())
		os.Exit(1)
	}

	if *storeRun {
		if err := store(result); err != nil {
			fmt.Printf("there was an error saving data: %s", err.Error())
		}
	}

	if *showTrace {
		err = r.Report(result, os.Stdout)
		if err != nil {
			fmt.Printf("there was an error writing the report: %s", err.Error())
		}
	}

	if runErr != nil {
		fmt.Printf("there was an error during simulation: %s\n", runErr.Error())
		os.Exit(1)
	}
}

func store(result *scenario.Result) error {
	conn, err := sqlite3.Open(*dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	scenarioRunId, err := data.NewRunStore(conn).Store(result, "vendingsim_cli")
	if err != nil {
		return err
	}
	fmt.Printf("#%d ", au.Bold(scenarioRunId))

	sales, err := data.Sales(conn, scenarioRunId)
	if err != nil {
		return err
	}
	for _, s := range sales {
		fmt.Printf("%s×%d ", s.Pop, au.Bold(s.Sold))
	}

	return nil
}

type Runner interface {
	Document() *scenario.Document
	Run() (*scenario.Result, error)
	Report(result *scenario.Result, writer io.Writer) error
}

type runner struct {
	ctx    context.Context
	doc    *scenario.Document
	logbuf *bytes.Buffer
}

func (r *runner) Document() *scenario.Document {
	return r.doc
}

func (r *runner) Run() (*scenario.Result, error) {
	return scenario.Run(r.ctx, r.doc)
}

func (r *runner) Report(result *scenario.Result, writer io.Writer) error {
	fmt.Fprintf(writer,
		"%5s      %15s %-8d  %13s %-8d  %14s %-8d  %20s %-10s    %20s %-12s\n\n",
		au.Bold("Done."),
		au.BgGreen("Completed steps"),
		au.Bold(len(result.Completed)),
		au.BgBrown("Ignored steps"),
		au.Bold(len(result.Ignored)),
		au.BgCyan("Device events"),
		au.Bold(len(result.Events)),
		au.Cyan("Running time:"),
		time.Now().Sub(startRunning).String(),
		au.Cyan("Simulated time:"),
		result.RanFor.String(),
	)

	printer := message.NewPrinter(language.AmericanEnglish)
	fmt.Fprintln(writer, au.BgGreen(fmt.Sprintf("%20s  %-24s %-60s", "Time (ns)", "Step Kind", "Notes")).Bold())
	for _, c := range result.Completed {
		fmt.Fprintln(writer, printer.Sprintf(
			"%20d  %-24s %s",
			c.Step.OccursAt().UnixNano(),
			c.Step.Kind(),
			strings.Join(c.Step.Notes(), fmt.Sprintf("\n%-47s", " ")),
		))
	}

	fmt.Fprint(writer, "\n")
	fmt.Fprintln(writer, au.BgBrown(fmt.Sprintf("%20s  %-24s %-34s %-29s", "Time (ns)", "Step Kind", "Notes", "Reason Ignored")).Bold())
	for _, i := range result.Ignored {
		fmt.Fprintln(writer, printer.Sprintf(
			"%20d  %-24s %-34s %-29s",
			i.Step.OccursAt().UnixNano(),
			i.Step.Kind(),
			strings.Join(i.Step.Notes(), "; "),
			coloredReason(i.Reason),
		))
	}

	fmt.Fprint(writer, "\n")
	fmt.Fprintln(writer, au.BgCyan(fmt.Sprintf("%20s  %-24s %-24s %-40s", "Time (ns)", "Device", "Event", "Detail")).Bold())
	for _, e := range result.Events {
		fmt.Fprintln(writer, printer.Sprintf(
			"%20d  %-24s %-24s %s",
			e.OccursAt.UnixNano(),
			e.Device,
			e.Name,
			e.Detail,
		))
	}

	fmt.Fprint(writer, "\n")
	fmt.Fprintln(writer, au.Bold(fmt.Sprintf("%-100s", "          Left in the machine")).BgMagenta())
	for i, coins := range result.Contents.UnusedCoinsForChange {
		fmt.Fprintln(writer, printer.Sprintf("%-24s %d coins", fmt.Sprintf("CoinRack-%d", result.Config.CoinKinds[i]), len(coins)))
	}
	for i, cans := range result.Contents.UnsoldPopCans {
		fmt.Fprintln(writer, printer.Sprintf("%-24s %d cans", fmt.Sprintf("PopCanRack-%d", i), len(cans)))
	}
	fmt.Fprintln(writer, printer.Sprintf("%-24s %d coins", "StorageBin", len(result.Contents.PaymentCoinsInStorageBin)))
	fmt.Fprintln(writer, printer.Sprintf("%-24s %d", "Unspent credit", result.Balance))

	fmt.Fprint(writer, "\n")
	fmt.Fprintln(writer, au.Bold(fmt.Sprintf("%-100s", "          Log output from vendingsim")).BgBlue())
	fmt.Fprintln(writer, r.logbuf.String())

	return nil
}

func coloredReason(reason string) string {
	switch reason {
	case simulator.OccursInPast:
		return au.Red(reason).String()
	case simulator.OccursAfterHalt:
		return au.Magenta(reason).String()
	case simulator.DeviceDisabled:
		return au.Cyan(reason).String()
	case simulator.CapacityExceeded, simulator.StockEmpty:
		return au.Brown(reason).String()
	default:
		return reason
	}
}

// NewRunner loads the scenario named by the flags and applies the flag
// overrides to it.
func NewRunner() (Runner, error) {
	doc := scenario.DefaultDocument()
	if *scenarioPath != "" {
		var err error
		doc, err = scenario.Load(*scenarioPath)
		if err != nil {
			return nil, err
		}
	}

	if *simDuration > 0 {
		doc.Duration = *simDuration
	}
	if *numberOfCustomers >= 0 {
		if doc.Customers == nil {
			doc.Customers = &scenario.Customers{Pattern: scenario.UniformPattern}
		}
		doc.Customers.Count = *numberOfCustomers
	}
	if *seed != 0 && doc.Customers != nil {
		doc.Customers.Seed = *seed
	}

	level := zapcore.InfoLevel
	if *debug {
		level = zapcore.DebugLevel
	}

	buf := new(bytes.Buffer)
	ctx := logging.WithLogger(context.Background(), logging.NewLogger(buf, level))

	return &runner{
		ctx:    ctx,
		doc:    doc,
		logbuf: buf,
	}, nil
}
