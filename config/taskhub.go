package config

import (
	"os"
	"path/filepath"
	"time"
)

type Logging struct {
	ApiEndpointLogging bool
}

type Taskhub struct {
	AppVersion         string
	DataDir            string
	DatabaseConnString string
	ApiListen          string
	Hostname           string
	SetupTimeout       time.Duration
	LoggingConfig      Logging
}

func (cfg *Taskhub) Load(filename string) error {
	return load(cfg, filename)
}

func (cfg *Taskhub) Save(filename string) error {
	return save(cfg, filename)
}

// SetDataDir rebases the data directory; relative paths derived from it are
// recomputed by the caller.
func (cfg *Taskhub) SetDataDir(ddir string) {
	cfg.DataDir = ddir
}

// ConfigFile returns the canonical config path inside the data directory.
func (cfg *Taskhub) ConfigFile() string {
	return filepath.Join(cfg.DataDir, "taskhub.json")
}

func NewTaskhub(appVersion string) *Taskhub {
	pwd, _ := os.Getwd()

	return &Taskhub{
		AppVersion:         appVersion,
		DataDir:            pwd,
		DatabaseConnString: "sqlite=taskhub.db",
		ApiListen:          ":3010",
		Hostname:           "http://localhost:3010",
		SetupTimeout:       time.Second * 5,

		LoggingConfig: Logging{
			ApiEndpointLogging: false,
		},
	}
}
