// Package flags holds the command line flag definitions shared by the
// reconciler tools, plus logger setup from flag values.
package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ruteri/mdm-cert-reconciler/common"
	"github.com/ruteri/mdm-cert-reconciler/config"
)

var ConfigFileFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "path to optional YAML config file; flags override file values",
	EnvVars: []string{"RECONCILER_CONFIG"},
}

var StoreURIFlag = &cli.StringFlag{
	Name:    "store-uri",
	Usage:   "configuration store backend: registry://, file:///path or mem://",
	EnvVars: []string{"RECONCILER_STORE_URI"},
}

var CertStoreURIFlag = &cli.StringFlag{
	Name:    "cert-store-uri",
	Usage:   "certificate store backend: system://MY, dir:///path or mem://",
	EnvVars: []string{"RECONCILER_CERT_STORE_URI"},
}

var ProviderIDFlag = &cli.StringFlag{
	Name:    "provider-id",
	Usage:   "enrollment provider tag to match",
	EnvVars: []string{"RECONCILER_PROVIDER_ID"},
}

var IssuerPatternFlag = &cli.StringFlag{
	Name:    "issuer-pattern",
	Usage:   "management CA substring matched against certificate issuers",
	EnvVars: []string{"RECONCILER_ISSUER_PATTERN"},
}

var OpLogFileFlag = &cli.StringFlag{
	Name:    "oplog-file",
	Usage:   "operation log file path; logs to stdout if unset",
	EnvVars: []string{"RECONCILER_OPLOG_FILE"},
}

var DryRunFlag = &cli.BoolFlag{
	Name:    "dry-run",
	Usage:   "report drift without writing corrections",
	EnvVars: []string{"RECONCILER_DRY_RUN"},
}

var LogJSONFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	Usage:   "log in JSON format",
	EnvVars: []string{"RECONCILER_LOG_JSON"},
}

var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	Usage:   "log debug messages",
	EnvVars: []string{"RECONCILER_LOG_DEBUG"},
}

var LogUIDFlag = &cli.BoolFlag{
	Name:    "log-uid",
	Value:   false,
	Usage:   "generate a uuid and add to all log messages",
	EnvVars: []string{"RECONCILER_LOG_UID"},
}

// SetupLogger builds the process logger from flag values.
func SetupLogger(cCtx *cli.Context, service string) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: service,
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// LoadConfig reads the optional config file and applies flag overrides.
func LoadConfig(cCtx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(cCtx.String(ConfigFileFlag.Name))
	if err != nil {
		return cfg, err
	}

	if v := cCtx.String(StoreURIFlag.Name); v != "" {
		cfg.StoreURI = v
	}
	if v := cCtx.String(CertStoreURIFlag.Name); v != "" {
		cfg.CertStoreURI = v
	}
	if v := cCtx.String(ProviderIDFlag.Name); v != "" {
		cfg.ProviderID = v
	}
	if v := cCtx.String(IssuerPatternFlag.Name); v != "" {
		cfg.IssuerPattern = v
	}
	if v := cCtx.String(OpLogFileFlag.Name); v != "" {
		cfg.OpLogFile = v
	}
	if cCtx.Bool(DryRunFlag.Name) {
		cfg.DryRun = true
	}
	return cfg, nil
}
