package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"opencv-filtering/internal/app"
	"opencv-filtering/internal/bootstrap"
	"opencv-filtering/internal/config"
	"opencv-filtering/internal/gui"
	"opencv-filtering/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		settings  config.Config
		logCloser io.Closer
	)

	runner := bootstrap.New(bootstrap.Deps{
		InitLogging: func() (logger.Logger, error) {
			log, closer, err := logger.Init(config.FromEnv(config.Default()).Log)
			if err != nil {
				return nil, err
			}
			logCloser = closer
			return log, nil
		},
		NewRoot: func() (app.Root, error) {
			cfg, err := loadSettings()
			if err != nil {
				return nil, err
			}
			settings = cfg
			return gui.NewRoot(cfg.Window), nil
		},
		NewController: func(root app.Root, log logger.Logger) (app.Controller, error) {
			return newController(root, log, settings, gui.OpenDevice)
		},
	})

	defer func() { closeLog(logCloser, os.Stderr) }()

	_, err := runner.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.AppName, err)
		return 1
	}
	return 0
}

// newController quits the root when the controller cannot be built, so a
// rejected session does not leave the fyne app behind.
func newController(root app.Root, log logger.Logger, settings config.Config, open gui.Opener) (app.Controller, error) {
	controller, err := gui.NewMainController(root, log, settings, open)
	if err != nil {
		root.Quit()
		return nil, err
	}
	return controller, nil
}

func closeLog(closer io.Closer, stderr io.Writer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		fmt.Fprintf(stderr, "%s: cannot close log file: %v\n", app.AppName, err)
	}
}

// loadSettings reads the settings file from the working directory, which
// the bootstrap runner has already pinned to the executable's directory.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(config.SettingsFile)
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)
	return cfg, cfg.Validate()
}
