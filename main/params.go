// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/factoryvm/factoryvm"
)

const (
	versionKey         = "version"
	httpHostKey        = "http-host"
	httpPortKey        = "http-port"
	genesisFileKey     = "genesis-file"
	journalPathKey     = "journal-path"
	stepIntervalKey    = "step-interval"
	maxContractSizeKey = "max-contract-size"
	logLevelKey        = "log-level"

	envPrefix = "FACTORYVM"
)

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(factoryvm.Name, flag.ContinueOnError)
	defaults := factoryvm.DefaultConfig()

	fs.Bool(versionKey, false, "If true, prints the version and quits")
	fs.String(httpHostKey, "127.0.0.1", "Address the JSON-RPC server listens on")
	fs.Uint(httpPortKey, 9650, "Port the JSON-RPC server listens on")
	fs.String(genesisFileKey, "", "Genesis JSON file. A development genesis is used when empty")
	fs.String(journalPathKey, "", "SQLite receipts journal, or :memory:. Journaling is off when empty")
	fs.Duration(stepIntervalKey, defaults.StepInterval, "Longest wait between two steps")
	fs.Int(maxContractSizeKey, defaults.MaxContractSize, "Largest deployable code, in bytes")
	fs.String(logLevelKey, "info", "Log level (debug, info, warn, error)")

	return fs
}

// getViper returns the viper environment for the node binary. Flags win over
// FACTORYVM_* environment variables, which may come from a .env file.
func getViper(args []string) (*viper.Viper, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet(factoryvm.Name, pflag.ContinueOnError)
	fs.AddGoFlagSet(buildFlagSet())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

type nodeConfig struct {
	version     bool
	httpAddr    string
	genesisFile string
	journalPath string
	logLevel    string
	vm          factoryvm.Config
}

func getConfig(args []string) (nodeConfig, error) {
	v, err := getViper(args)
	if err != nil {
		return nodeConfig{}, err
	}

	config := nodeConfig{
		version:     v.GetBool(versionKey),
		httpAddr:    fmt.Sprintf("%s:%d", v.GetString(httpHostKey), v.GetUint(httpPortKey)),
		genesisFile: v.GetString(genesisFileKey),
		journalPath: v.GetString(journalPathKey),
		logLevel:    v.GetString(logLevelKey),
		vm:          factoryvm.DefaultConfig(),
	}
	config.vm.StepInterval = v.GetDuration(stepIntervalKey)
	config.vm.MaxContractSize = v.GetInt(maxContractSizeKey)

	if config.vm.StepInterval <= 0 {
		return nodeConfig{}, fmt.Errorf("%s must be positive, got %s", stepIntervalKey, config.vm.StepInterval)
	}
	if config.vm.StepInterval > time.Minute {
		return nodeConfig{}, fmt.Errorf("%s must be at most a minute, got %s", stepIntervalKey, config.vm.StepInterval)
	}
	if config.vm.MaxContractSize <= 0 {
		return nodeConfig{}, fmt.Errorf("%s must be positive, got %d", maxContractSizeKey, config.vm.MaxContractSize)
	}
	if config.vm.MaxContractSize > factoryvm.MaxPayloadSize {
		return nodeConfig{}, fmt.Errorf("%s must be at most %d, got %d", maxContractSizeKey, factoryvm.MaxPayloadSize, config.vm.MaxContractSize)
	}
	return config, nil
}
