// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/factory"
	"github.com/ava-labs/factoryvm/factoryvm"
	"github.com/ava-labs/factoryvm/receipts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	config, err := getConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if config.version {
		fmt.Printf("%s@%s\n", factoryvm.Name, factoryvm.Version)
		os.Exit(0)
	}

	lvl, err := log.LvlFromString(config.logLevel)
	if err != nil {
		fmt.Printf("couldn't parse log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Error("node stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config nodeConfig) error {
	genesis, err := loadGenesis(config.genesisFile)
	if err != nil {
		return err
	}

	opts := []factoryvm.Option{factoryvm.WithConfig(config.vm)}
	if config.journalPath != "" {
		journal, err := receipts.Open(ctx, config.journalPath)
		if err != nil {
			return err
		}
		defer journal.Close()
		opts = append(opts, factoryvm.WithJournal(journal))
	}

	vm := factoryvm.New(opts...)
	if err := vm.Initialize(memdb.New(), genesis); err != nil {
		return fmt.Errorf("couldn't initialize vm: %w", err)
	}
	defer func() {
		if err := vm.Shutdown(); err != nil {
			log.Warn("couldn't shut down vm", "err", err)
		}
	}()

	handler, err := factoryvm.NewHandler(vm)
	if err != nil {
		return err
	}
	staticHandler, err := factoryvm.NewStaticHandler()
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle(factoryvm.Endpoint, handler)
	mux.Handle(factoryvm.StaticEndpoint, staticHandler)
	server := &http.Server{
		Addr:              config.httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 2)
	go func() {
		log.Info("serving JSON-RPC", "addr", config.httpAddr, "endpoint", factoryvm.Endpoint)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	go func() {
		errs <- vm.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("couldn't shut down server", "err", shutdownErr)
	}
	return err
}

// loadGenesis reads [path], or builds a development genesis with a funded
// user and an unconfigured factory when [path] is empty.
func loadGenesis(path string) ([]byte, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't read genesis: %w", err)
		}
		return b, nil
	}
	return json.Marshal(factoryvm.Genesis{Accounts: []factoryvm.GenesisAccount{
		{ID: "alice.test", Balance: contract.NewAmount(contract.Coins(1_000))},
		{ID: "bob.test", Balance: contract.NewAmount(contract.Coins(1_000))},
		{ID: "factory.test", Balance: contract.NewAmount(contract.Coins(100)), Contract: factory.Name},
	}})
}
