package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/rentadmin/pkg/config"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
	"github.com/dmitrymomot/rentadmin/pkg/requestid"
)

var version = "dev"

type cliArgs struct {
	EnvFile  string `validate:"omitempty,file"`
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
}

var cmdArgs cliArgs

func main() {
	app := &cli.App{
		Name:        "rentadmin",
		Version:     version,
		Usage:       "reservation admin backend",
		Description: "Serves live notifications and telemetry for the reservation admin UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "dotenv file to load before reading the environment",
				Aliases:     []string{"e"},
				EnvVars:     []string{"ENV_FILE"},
				Destination: &cmdArgs.EnvFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Logging level: [debug info warn error]; defaults per APP_ENV",
				Aliases:     []string{"l"},
				EnvVars:     []string{"LOG_LEVEL"},
				Destination: &cmdArgs.LogLevel,
			},
		},
		Before: func(*cli.Context) error {
			if err := validator.New().Struct(&cmdArgs); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if cmdArgs.EnvFile != "" {
				config.LoadEnvFiles(cmdArgs.EnvFile)
			} else {
				config.LoadEnvFiles()
			}
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			notifyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("program shutdown", logger.Error(err))
		os.Exit(1)
	}
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env                 string   `env:"APP_ENV" envDefault:"development"`
	Name                string   `env:"APP_NAME" envDefault:"rentadmin"`
	LogFormat           string   `env:"LOG_FORMAT" validate:"omitempty,oneof=json text"`
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`
}

func loadAppConfig() (AppConfig, error) {
	var app AppConfig
	if err := config.Load(&app); err != nil {
		return app, err
	}
	if err := validator.New().Struct(&app); err != nil {
		return app, cli.Exit(err.Error(), 2)
	}
	return app, nil
}

func setupLogging(app AppConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cmdArgs.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cmdArgs.LogLevel))
	}
	if app.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(app.LogFormat)))
	}

	log := logger.New(opts...)
	logger.SetAsDefault(log)
	return log
}
