package types

import "time"

// Config is a struct to hold the configuration data
type Config struct {
	Logging struct {
		OutputLevel  string `yaml:"outputLevel" envconfig:"LOGGING_OUTPUT_LEVEL"`
		OutputStderr bool   `yaml:"outputStderr" envconfig:"LOGGING_OUTPUT_STDERR"`

		FilePath  string `yaml:"filePath" envconfig:"LOGGING_FILE_PATH"`
		FileLevel string `yaml:"fileLevel" envconfig:"LOGGING_FILE_LEVEL"`
	} `yaml:"logging"`

	Trace struct {
		ShowCalls       string `yaml:"showCalls" envconfig:"TRACE_SHOW_CALLS"`
		ResolveHashes   bool   `yaml:"resolveHashes" envconfig:"TRACE_RESOLVE_HASHES"`
		ShowStorageLogs bool   `yaml:"showStorageLogs" envconfig:"TRACE_SHOW_STORAGE_LOGS"`
		ShowVMDetails   bool   `yaml:"showVmDetails" envconfig:"TRACE_SHOW_VM_DETAILS"`
		ShowEvents      bool   `yaml:"showEvents" envconfig:"TRACE_SHOW_EVENTS"`
		DisableColors   bool   `yaml:"disableColors" envconfig:"TRACE_DISABLE_COLORS"`
	} `yaml:"trace"`

	SignatureLookup struct {
		DisableSourcify bool          `yaml:"disableSourcify" envconfig:"SIGLOOKUP_DISABLE_SOURCIFY"`
		Disable4Bytes   bool          `yaml:"disable4Bytes" envconfig:"SIGLOOKUP_DISABLE_4BYTES"`
		DisableNetwork  bool          `yaml:"disableNetwork" envconfig:"SIGLOOKUP_DISABLE_NETWORK"`
		SourcifyBaseUrl string        `yaml:"sourcifyBaseUrl" envconfig:"SIGLOOKUP_SOURCIFY_BASE_URL"`
		RecheckTimeout  time.Duration `yaml:"recheckTimeout" envconfig:"SIGLOOKUP_RECHECK_TIMEOUT"`
		RequestTimeout  time.Duration `yaml:"requestTimeout" envconfig:"SIGLOOKUP_REQUEST_TIMEOUT"`
		CacheSize       int           `yaml:"cacheSize" envconfig:"SIGLOOKUP_CACHE_SIZE"`
	} `yaml:"signatureLookup"`

	SystemContracts struct {
		Source string `yaml:"source" envconfig:"SYSTEM_CONTRACTS_SOURCE"`
		Path   string `yaml:"path" envconfig:"SYSTEM_CONTRACTS_PATH"`
	} `yaml:"systemContracts"`

	Database struct {
		Enabled bool   `yaml:"enabled" envconfig:"DATABASE_ENABLED"`
		Engine  string `yaml:"engine" envconfig:"DATABASE_ENGINE"`
		Sqlite  struct {
			File         string `yaml:"file" envconfig:"DATABASE_SQLITE_FILE"`
			MaxOpenConns int    `yaml:"maxOpenConns" envconfig:"DATABASE_SQLITE_MAX_OPEN_CONNS"`
			MaxIdleConns int    `yaml:"maxIdleConns" envconfig:"DATABASE_SQLITE_MAX_IDLE_CONNS"`
		} `yaml:"sqlite"`
		Pgsql struct {
			Username     string `yaml:"user" envconfig:"DATABASE_PGSQL_USERNAME"`
			Password     string `yaml:"password" envconfig:"DATABASE_PGSQL_PASSWORD"`
			Name         string `yaml:"name" envconfig:"DATABASE_PGSQL_NAME"`
			Host         string `yaml:"host" envconfig:"DATABASE_PGSQL_HOST"`
			Port         string `yaml:"port" envconfig:"DATABASE_PGSQL_PORT"`
			MaxOpenConns int    `yaml:"maxOpenConns" envconfig:"DATABASE_PGSQL_MAX_OPEN_CONNS"`
			MaxIdleConns int    `yaml:"maxIdleConns" envconfig:"DATABASE_PGSQL_MAX_IDLE_CONNS"`
		} `yaml:"pgsql"`
	} `yaml:"database"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" envconfig:"METRICS_ENABLED"`
		Host    string `yaml:"host" envconfig:"METRICS_HOST"`
		Port    string `yaml:"port" envconfig:"METRICS_PORT"`
	} `yaml:"metrics"`
}

type SqliteDatabaseConfig struct {
	File         string
	MaxOpenConns int
	MaxIdleConns int
}

type PgsqlDatabaseConfig struct {
	Username     string
	Password     string
	Name         string
	Host         string
	Port         string
	MaxOpenConns int
	MaxIdleConns int
}
