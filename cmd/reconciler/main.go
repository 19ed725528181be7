package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/mdm-cert-reconciler/certstore"
	"github.com/ruteri/mdm-cert-reconciler/cmd/flags"
	"github.com/ruteri/mdm-cert-reconciler/configstore"
	"github.com/ruteri/mdm-cert-reconciler/enrollment"
	"github.com/ruteri/mdm-cert-reconciler/oplog"
	"github.com/ruteri/mdm-cert-reconciler/reconcile"
)

var reconcilerFlags = []cli.Flag{
	flags.ConfigFileFlag,
	flags.StoreURIFlag,
	flags.CertStoreURIFlag,
	flags.ProviderIDFlag,
	flags.IssuerPatternFlag,
	flags.OpLogFileFlag,
	flags.DryRunFlag,
	flags.LogJSONFlag,
	flags.LogDebugFlag,
	flags.LogUIDFlag,
}

func main() {
	app := &cli.App{
		Name:  "reconciler",
		Usage: "Detect and correct drift in the enrollment's certificate binding values",
		Flags: reconcilerFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx, "reconciler")

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

			var sink io.Writer = os.Stdout
			if cfg.OpLogFile != "" {
				f, err := os.OpenFile(cfg.OpLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					// Logging is best effort; a missing sink must not
					// block the correction itself.
					logger.Warn("Failed to open operation log, logging to stdout", "err", err)
				} else {
					defer f.Close()
					sink = f
				}
			}
			opLog := oplog.New(sink)

			paths := configstore.DefaultPaths()
			engine := reconcile.NewEngine(reconcile.EngineConfig{
				Locator:    enrollment.NewLocator(store, paths, logger),
				Resolver:   enrollment.NewResolver(store, certs, paths, cfg.IssuerPattern, logger),
				Store:      store,
				Paths:      paths,
				ProviderID: cfg.ProviderID,
				DryRun:     cfg.DryRun,
				OpLog:      opLog,
				Log:        logger,
			})

			run := engine.Run()
			if code := run.ExitCode(); code != 0 {
				return cli.Exit(fmt.Sprintf("reconciliation failed (%d kind(s) failed)", run.Failed), code)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
