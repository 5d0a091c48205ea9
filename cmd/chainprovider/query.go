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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/blinklabs-io/chainprovider/ledger"
)

type queryFlags struct {
	flagset *flag.FlagSet
}

func newQueryFlags() *queryFlags {
	f := &queryFlags{
		flagset: flag.NewFlagSet("query", flag.ExitOnError),
	}
	return f
}

func runQuery(f *globalFlags) {
	queryFlags := newQueryFlags()
	err := queryFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	args := queryFlags.flagset.Args()
	if len(args) < 1 {
		fmt.Printf("ERROR: you must specify a query\n")
		os.Exit(1)
	}
	requireArg := func(name string) string {
		if len(args) < 2 {
			fmt.Printf("ERROR: query %s requires an argument (%s)\n", args[0], name)
			os.Exit(1)
		}
		return args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	b := createProvider(f)

	switch args[0] {
	case "protocol-params":
		pparams, err := b.GetProtocolParameters(ctx)
		if err != nil {
			fmt.Printf("ERROR: failure querying protocol params: %s\n", err)
			os.Exit(1)
		}
		printJson("protocol-params", pparams)
	case "utxos":
		utxos, err := b.GetUtxos(ctx, ledger.Address(requireArg("address")))
		if err != nil {
			fmt.Printf("ERROR: failure querying UTxOs: %s\n", err)
			os.Exit(1)
		}
		printUtxos(utxos)
	case "utxo-by-unit":
		utxo, err := b.GetUtxoByUnit(ctx, ledger.Unit(requireArg("unit")))
		if err != nil {
			fmt.Printf("ERROR: failure querying UTxO by unit: %s\n", err)
			os.Exit(1)
		}
		printUtxos([]ledger.Utxo{utxo})
	case "utxos-by-outref":
		outRefs := make([]ledger.OutRef, 0, len(args)-1)
		for _, arg := range args[1:] {
			outRef, err := parseOutRef(arg)
			if err != nil {
				fmt.Printf("ERROR: %s\n", err)
				os.Exit(1)
			}
			outRefs = append(outRefs, outRef)
		}
		utxos, err := b.GetUtxosByOutRef(ctx, outRefs)
		if err != nil {
			fmt.Printf("ERROR: failure querying UTxOs by outref: %s\n", err)
			os.Exit(1)
		}
		printUtxos(utxos)
	case "delegation":
		delegation, err := b.GetDelegation(ctx, ledger.RewardAddress(requireArg("reward address")))
		if err != nil {
			fmt.Printf("ERROR: failure querying delegation: %s\n", err)
			os.Exit(1)
		}
		printJson("delegation", delegation)
	case "datum":
		datumHash, err := ledger.NewBlake2b256FromHex(requireArg("datum hash"))
		if err != nil {
			fmt.Printf("ERROR: invalid datum hash: %s\n", err)
			os.Exit(1)
		}
		datum, err := b.GetDatum(ctx, datumHash)
		if err != nil {
			fmt.Printf("ERROR: failure querying datum: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("datum: %s\n", datum.String())
	case "tx":
		txHash, err := ledger.NewBlake2b256FromHex(requireArg("tx hash"))
		if err != nil {
			fmt.Printf("ERROR: invalid tx hash: %s\n", err)
			os.Exit(1)
		}
		tx, err := b.GetTxByHash(ctx, txHash)
		if err != nil {
			fmt.Printf("ERROR: failure querying transaction: %s\n", err)
			os.Exit(1)
		}
		printJson("tx", tx)
	default:
		fmt.Printf("ERROR: unknown query: %s\n", args[0])
		os.Exit(1)
	}
}

// parseOutRef parses an output reference in <tx hash>#<index> format
func parseOutRef(outRef string) (ledger.OutRef, error) {
	txHashHex, idxStr, ok := strings.Cut(outRef, "#")
	if !ok {
		return ledger.OutRef{}, fmt.Errorf("invalid outref %q: expected <tx hash>#<index>", outRef)
	}
	txHash, err := ledger.NewBlake2b256FromHex(txHashHex)
	if err != nil {
		return ledger.OutRef{}, fmt.Errorf("invalid outref %q: %w", outRef, err)
	}
	idx, err := strconv.ParseUint(idxStr, 10, 32)
	if err != nil {
		return ledger.OutRef{}, fmt.Errorf("invalid outref %q: %w", outRef, err)
	}
	return ledger.OutRef{
		TxHash:      txHash,
		OutputIndex: uint32(idx),
	}, nil
}

func printUtxos(utxos []ledger.Utxo) {
	for _, utxo := range utxos {
		fmt.Printf("%s: address = %s", utxo.OutRef().String(), utxo.Address)
		for _, unit := range utxo.Assets.Units() {
			fmt.Printf(", %s = %s", unit, utxo.Assets[unit].String())
		}
		if utxo.DatumHash != nil {
			fmt.Printf(", datum hash = %s", utxo.DatumHash.String())
		}
		if utxo.Datum != nil {
			fmt.Printf(", datum = %s", utxo.Datum.String())
		}
		if utxo.ScriptRef != nil {
			fmt.Printf(", script ref = %s", utxo.ScriptRef.Type.String())
		}
		fmt.Printf("\n")
	}
}

func printJson(name string, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: failed to encode %s: %s\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s\n", name, out)
}
