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
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/blinklabs-io/chainprovider/provider"
)

type submitFlags struct {
	flagset   *flag.FlagSet
	txFile    string
	rawTxFile string
	wait      bool
	interval  time.Duration
}

func newSubmitFlags() *submitFlags {
	f := &submitFlags{
		flagset: flag.NewFlagSet("submit", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.txFile,
		"tx-file",
		"",
		"path to the JSON transaction file to submit",
	)
	f.flagset.StringVar(
		&f.rawTxFile,
		"raw-tx-file",
		"",
		"path to the raw transaction file to submit",
	)
	f.flagset.BoolVar(
		&f.wait,
		"wait",
		false,
		"wait for the transaction to be confirmed",
	)
	f.flagset.DurationVar(
		&f.interval,
		"interval",
		provider.DefaultAwaitTxCheckInterval,
		"confirmation check interval",
	)
	return f
}

func runSubmit(f *globalFlags) {
	submitFlags := newSubmitFlags()
	err := submitFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}

	var txBytes []byte
	if submitFlags.txFile != "" {
		txData, err := os.ReadFile(submitFlags.txFile)
		if err != nil {
			fmt.Printf("Failed to load transaction file: %s\n", err)
			os.Exit(1)
		}
		var jsonData map[string]string
		if err := json.Unmarshal(txData, &jsonData); err != nil {
			fmt.Printf("failed to parse transaction file: %s\n", err)
			os.Exit(1)
		}
		txBytes, err = hex.DecodeString(jsonData["cborHex"])
		if err != nil {
			fmt.Printf("failed to decode transaction: %s\n", err)
			os.Exit(1)
		}
	} else if submitFlags.rawTxFile != "" {
		txBytes, err = os.ReadFile(submitFlags.rawTxFile)
		if err != nil {
			fmt.Printf("Failed to load transaction file: %s\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("you must specify -tx-file or -raw-tx-file\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	b := createProvider(f)

	txHash, err := b.SubmitTx(ctx, txBytes)
	if err != nil {
		var malformedErr provider.MalformedSubmissionError
		if errors.As(err, &malformedErr) {
			fmt.Printf("ERROR: transaction rejected: %s\n", malformedErr.Message)
		} else {
			fmt.Printf("ERROR: %s\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Successfully submitted transaction %s\n", txHash.String())

	if submitFlags.wait {
		if _, err := b.AwaitTx(ctx, txHash, submitFlags.interval); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Transaction %s confirmed\n", txHash.String())
	}
}
