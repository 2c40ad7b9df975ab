package utils

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ethpandaops/zvmtrace/config"
	"github.com/ethpandaops/zvmtrace/types"
)

// Config is the globally accessible configuration
var Config *types.Config

// ReadConfig will process a configuration
func ReadConfig(cfg *types.Config, path string) error {
	err := readConfigFile(cfg, path)
	if err != nil {
		return err
	}

	err = readConfigEnv(cfg)
	if err != nil {
		return err
	}

	// fill in embedded defaults for everything the file/env left unset
	defaults := &types.Config{}
	err = yaml.Unmarshal([]byte(config.DefaultConfigYml), defaults)
	if err != nil {
		return fmt.Errorf("error parsing embedded default config: %w", err)
	}
	err = mergo.Merge(cfg, defaults)
	if err != nil {
		return fmt.Errorf("error merging default config: %w", err)
	}

	if _, err := types.ParseDisplayMode(cfg.Trace.ShowCalls); err != nil {
		return fmt.Errorf("invalid trace.showCalls setting: %w", err)
	}

	if cfg.Database.Enabled && cfg.Database.Engine == "sqlite" && cfg.Database.Sqlite.File == "" {
		return fmt.Errorf("database enabled with sqlite engine, but no database file configured")
	}

	log.WithFields(log.Fields{
		"showCalls":       cfg.Trace.ShowCalls,
		"resolveHashes":   cfg.Trace.ResolveHashes,
		"contractsSource": cfg.SystemContracts.Source,
	}).Infof("did init config")

	return nil
}

func readConfigFile(cfg *types.Config, path string) error {
	if path == "" {
		return yaml.Unmarshal([]byte(config.DefaultConfigYml), cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %v: %v", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("error decoding config file %v: %v", path, err)
	}

	return nil
}

func readConfigEnv(cfg *types.Config) error {
	return envconfig.Process("", cfg)
}
