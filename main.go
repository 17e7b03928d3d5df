package main

import (
	logging "github.com/ipfs/go-log/v2"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/taskhub-app/taskhub/api"
	apiv1 "github.com/taskhub-app/taskhub/api/v1"
	"github.com/taskhub-app/taskhub/build"
	"github.com/taskhub-app/taskhub/config"
	"github.com/taskhub-app/taskhub/model"
	"github.com/taskhub-app/taskhub/setup"
	"github.com/taskhub-app/taskhub/util"
)

var log = logging.Logger("taskhub")

func main() {
	logging.SetLogLevel("taskhub", "info")
	logging.SetLogLevel("setup", "info")
	logging.SetLogLevel("notif", "info")
	logging.SetLogLevel("api-v1", "info")

	app := cli.NewApp()
	app.Name = "taskhub"
	app.Version = build.Version
	app.Usage = "taskhub api server"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "datadir",
			Usage:   "directory to store data in",
			Value:   ".",
			EnvVars: []string{"TASKHUB_DATADIR"},
		},
		&cli.StringFlag{
			Name:    "database",
			Usage:   "connection string in DBTYPE=PARAMS form",
			EnvVars: []string{"TASKHUB_DATABASE"},
		},
		&cli.StringFlag{
			Name:    "apilisten",
			Usage:   "address for the api server to listen on",
			EnvVars: []string{"TASKHUB_API_LISTEN"},
		},
		&cli.BoolFlag{
			Name:  "logging",
			Usage: "enable api endpoint logging",
		},
		util.FlagLogLevel,
	}
	app.Action = func(cctx *cli.Context) error {
		if err := logging.SetLogLevel("taskhub", util.LogLevel); err != nil {
			return err
		}

		cfg, err := loadConfig(cctx)
		if err != nil {
			return err
		}

		db, err := util.SetupDatabase(cfg.DatabaseConnString)
		if err != nil {
			return xerrors.Errorf("opening database: %w", err)
		}

		if err := db.AutoMigrate(&model.Organization{}, &model.Notification{}); err != nil {
			return xerrors.Errorf("migrating owned tables: %w", err)
		}

		// Surface missing schema early. The server still starts on a partial
		// database; the operator gets a remediation hint instead of a crash
		// on first request.
		checker := setup.NewChecker(db)
		checker.Timeout = cfg.SetupTimeout
		if summary := setup.Summarize(checker.Run(cctx.Context)); summary.Failed > 0 {
			log.Warnf("schema checks failed for %v, apply the schema files before serving traffic", summary.Failing)
		}

		eng := api.NewEngine(cfg)
		eng.RegisterAPI(apiv1.NewAPIV1(cfg, db))

		log.Infof("taskhub %s listening on %s", build.Version, cfg.ApiListen)
		return eng.Start()
	}

	app.RunAndExitOnError()
}

// loadConfig reads the config file inside the datadir, writing defaults on
// first run, then applies flag overrides.
func loadConfig(cctx *cli.Context) (*config.Taskhub, error) {
	cfg := config.NewTaskhub(build.Version)
	cfg.SetDataDir(cctx.String("datadir"))

	filename := cfg.ConfigFile()
	if err := cfg.Load(filename); err != nil {
		if !xerrors.Is(err, config.ErrNotInitialized) {
			return nil, err
		}
		if err := cfg.Save(filename); err != nil {
			return nil, err
		}
		log.Infof("wrote default config to %s", filename)
	}

	// flags and the running binary win over whatever the file says
	cfg.AppVersion = build.Version
	cfg.SetDataDir(cctx.String("datadir"))
	if v := cctx.String("database"); v != "" {
		cfg.DatabaseConnString = v
	}
	if v := cctx.String("apilisten"); v != "" {
		cfg.ApiListen = v
	}
	if cctx.Bool("logging") {
		cfg.LoggingConfig.ApiEndpointLogging = true
	}
	return cfg, nil
}
