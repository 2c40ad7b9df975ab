package config

import (
	_ "embed"
)

// default node config
//
//go:embed default.config.yml
var DefaultConfigYml string

// known contract addresses (system contracts, precompiles, popular contracts)
//
//go:embed known_addresses.json
var KnownAddressesJson []byte
