// Package config loads the optional YAML configuration file of the
// reconciler tools. Command line flags override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ruteri/mdm-cert-reconciler/enrollment"
)

// Config holds the run parameters that can be set from a file.
type Config struct {
	// StoreURI selects the configuration store backend (registry://,
	// file:///path, mem://).
	StoreURI string `yaml:"store_uri"`
	// CertStoreURI selects the certificate store backend (system://MY,
	// dir:///path, mem://).
	CertStoreURI string `yaml:"cert_store_uri"`
	// ProviderID is the enrollment provider tag to match.
	ProviderID string `yaml:"provider_id"`
	// IssuerPattern is the management CA substring matched against
	// certificate issuers.
	IssuerPattern string `yaml:"issuer_pattern"`
	// OpLogFile is the operation log path; empty logs to stdout.
	OpLogFile string `yaml:"oplog_file"`
	// DryRun reports drift without writing corrections.
	DryRun bool `yaml:"dry_run"`
}

// Default returns the configuration of an enrolled Windows device.
func Default() Config {
	return Config{
		StoreURI:      "registry://",
		CertStoreURI:  "system://MY",
		ProviderID:    enrollment.DefaultProviderID,
		IssuerPattern: enrollment.DefaultIssuerPattern,
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
