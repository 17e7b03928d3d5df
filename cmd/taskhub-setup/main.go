package main

import (
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/taskhub-app/taskhub/build"
	"github.com/taskhub-app/taskhub/setup"
	"github.com/taskhub-app/taskhub/util"
)

var log = logging.Logger("taskhub-setup")

func main() {
	logging.SetLogLevel("taskhub-setup", "info")
	logging.SetLogLevel("setup", "info")

	app := cli.NewApp()
	app.Name = "taskhub-setup"
	app.Version = build.Version
	app.Usage = "verify the taskhub database schema and seed the default organization"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "database",
			Usage:   "connection string in DBTYPE=PARAMS form",
			Value:   "sqlite=taskhub.db",
			EnvVars: []string{"TASKHUB_DATABASE"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-check timeout",
			Value: setup.DefaultTimeout,
		},
		util.FlagLogLevel,
	}
	app.Action = func(cctx *cli.Context) error {
		if err := logging.SetLogLevel("taskhub-setup", util.LogLevel); err != nil {
			return err
		}

		db, err := util.SetupDatabase(cctx.String("database"))
		if err != nil {
			return xerrors.Errorf("opening database: %w", err)
		}

		checker := setup.NewChecker(db)
		checker.Timeout = cctx.Duration("timeout")

		start := time.Now()
		results := checker.Run(cctx.Context)

		fmt.Println()
		for _, res := range results {
			if res.Exists {
				fmt.Printf("  ok    %s\n", res.Name)
			} else {
				fmt.Printf("  FAIL  %s: %s\n", res.Name, res.Error)
			}
		}

		summary := setup.Summarize(results)
		fmt.Printf("\n%d passed, %d failed (%s)\n", summary.Passed, summary.Failed, time.Since(start).Round(time.Millisecond))

		if summary.Failed > 0 {
			fmt.Println("some checks failed; apply the schema files to this database and rerun")
			return xerrors.Errorf("%d of %d checks failed", summary.Failed, len(results))
		}
		return nil
	}

	app.RunAndExitOnError()
}
