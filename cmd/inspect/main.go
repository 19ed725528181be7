package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/mdm-cert-reconciler/certstore"
	"github.com/ruteri/mdm-cert-reconciler/cmd/flags"
	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/enrollment"
	"github.com/ruteri/mdm-cert-reconciler/interfaces"
	"github.com/ruteri/mdm-cert-reconciler/reconcile"
)

var inspectFlags = []cli.Flag{
	flags.ConfigFileFlag,
	flags.StoreURIFlag,
	flags.CertStoreURIFlag,
	flags.ProviderIDFlag,
	flags.IssuerPatternFlag,
	flags.LogJSONFlag,
	flags.LogDebugFlag,
}

// report is the JSON document printed to stdout.
type report struct {
	Enrollment interfaces.Enrollment          `json:"enrollment"`
	EntDMID    string                         `json:"ent_dm_id,omitempty"`
	Thumbprint string                         `json:"thumbprint,omitempty"`
	Values     []valueState                   `json:"values"`
	Candidates []interfaces.CertificateRecord `json:"certificate_candidates"`
}

type valueState struct {
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Current  string `json:"current"`
	Expected string `json:"expected,omitempty"`
	Drifted  bool   `json:"drifted"`
}

func main() {
	app := &cli.App{
		Name:  "inspect",
		Usage: "Print the enrollment's certificate binding state without modifying anything",
		Flags: inspectFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx, "inspect")

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			store, err := configstore.NewFactory(logger).StoreFor(cfg.StoreURI)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			certs, err := certstore.NewFactory(logger).StoreFor(cfg.CertStoreURI)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			paths := configstore.DefaultPaths()
			locator := enrollment.NewLocator(store, paths, logger)
			resolver := enrollment.NewResolver(store, certs, paths, cfg.IssuerPattern, logger)

			enr, err := locator.Locate(cfg.ProviderID)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			rep := report{Enrollment: enr, Candidates: []interfaces.CertificateRecord{}}
			if records, err := certs.Enumerate(); err == nil {
				rep.Candidates = records
			} else {
				logger.Warn("Failed to enumerate certificate store", "err", err)
			}

			if id, err := resolver.ManagementID(enr); err == nil {
				rep.EntDMID = id
			} else {
				logger.Warn("Failed to resolve management identity", "err", err)
			}
			if tp, err := resolver.Thumbprint(enr); err == nil {
				rep.Thumbprint = tp
			} else {
				logger.Warn("Failed to resolve enrollment thumbprint", "err", err)
			}

			protected := paths.ProtectedKey(enr.ID)
			for _, kind := range interfaces.Kinds() {
				state := valueState{Kind: kind.String(), Path: protected}

				current, err := store.Get(protected, kind.ValueName())
				if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) && !errors.Is(err, interfaces.ErrValueNotFound) {
					logger.Warn("Failed to read current value", "err", err, "kind", kind.String())
				}
				state.Current = current

				switch kind {
				case interfaces.SearchCriteria:
					if rep.EntDMID != "" {
						state.Expected = reconcile.BuildSearchCriteria(rep.EntDMID)
					}
				case interfaces.Reference:
					if rep.Thumbprint != "" {
						state.Expected = reconcile.BuildReference(rep.Thumbprint)
					}
				}
				state.Drifted = state.Expected != "" && state.Current != state.Expected
				rep.Values = append(rep.Values, state)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
