// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/chainprovider/provider/blockfrost"
)

// Version is set at build time
var Version = "devel"

type globalFlags struct {
	flagset   *flag.FlagSet
	network   string
	projectId string
	baseUrl   string
	rateLimit float64
	debug     bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.network,
		"network",
		"preview",
		"specifies the network to query",
	)
	f.flagset.StringVar(
		&f.projectId,
		"project-id",
		os.Getenv("BLOCKFROST_PROJECT_ID"),
		"Blockfrost project ID (defaults to $BLOCKFROST_PROJECT_ID)",
	)
	f.flagset.StringVar(
		&f.baseUrl,
		"base-url",
		"",
		"Blockfrost API base URL. this overrides the -network option",
	)
	f.flagset.Float64Var(
		&f.rateLimit,
		"rate-limit",
		10,
		"maximum requests per second, or 0 for no limit",
	)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	return f
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "query":
			runQuery(f)
		case "submit":
			runSubmit(f)
		case "version":
			fmt.Printf("chainprovider %s\n", Version)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf("You must specify a subcommand (query or submit)\n")
		os.Exit(1)
	}
}

func createProvider(f *globalFlags) *blockfrost.Blockfrost {
	logLevel := slog.LevelInfo
	if f.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}),
	)
	opts := []blockfrost.OptionFunc{
		blockfrost.WithProjectId(f.projectId),
		blockfrost.WithLogger(logger),
		blockfrost.WithClientVersion(Version),
		blockfrost.WithRateLimit(f.rateLimit, 1),
	}
	if f.baseUrl != "" {
		opts = append(opts, blockfrost.WithBaseUrl(f.baseUrl))
	} else {
		network := blockfrost.NetworkByName(f.network)
		if network == blockfrost.NetworkInvalid {
			fmt.Printf("Invalid network specified: %s\n", f.network)
			os.Exit(1)
		}
		opts = append(opts, blockfrost.WithNetwork(network))
	}
	b, err := blockfrost.New(opts...)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	return b
}
