// Package main implements the location worker: a recurring background task
// that samples the device's approximate position once per invocation when
// the coarse-location capability is granted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// options holds the parsed command line.
type options struct {
	configFile string
	once       bool
	migrate    string
	grant      string
	token      string
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := pflag.NewFlagSet("locationworker", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "path to a config file (default: ./config.yaml if present)")
	fs.BoolVar(&opts.once, "once", false, "run a single invocation of the location task and exit")
	fs.StringVar(&opts.migrate, "migrate", "", "run a database migration command: up, down, reset, status, version")
	fs.StringVar(&opts.grant, "grant", "", "record the coarse-location grant in the database: true or false")
	fs.StringVar(&opts.token, "token", "", "print a trigger token for the given subject and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	modes := 0
	for _, set := range []bool{opts.once, opts.migrate != "", opts.grant != "", opts.token != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("-once, -migrate, -grant and -token are mutually exclusive")
	}

	return opts, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the selected mode and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		return 2
	}

	cfg, err := loadAppConfig(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := setupAppLogger(cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up logger: %v\n", err)
		return 1
	}

	switch {
	case opts.migrate != "":
		if err := runMigrations(ctx, cfg, opts.migrate, logger); err != nil {
			logger.Error("migration failed", "command", opts.migrate, "error", err)
			return 1
		}
		return 0

	case opts.grant != "":
		granted, err := strconv.ParseBool(opts.grant)
		if err != nil {
			logger.Error("invalid -grant value", "value", opts.grant, "error", err)
			return 2
		}
		if err := runGrant(ctx, cfg, granted, logger); err != nil {
			logger.Error("failed to record grant", "error", err)
			return 1
		}
		return 0

	case opts.token != "":
		token, err := mintToken(ctx, cfg, opts.token)
		if err != nil {
			logger.Error("failed to generate token", "error", err)
			return 1
		}
		fmt.Fprintln(stdout, token)
		return 0
	}

	db, err := openDatabaseIfNeeded(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}

	app, err := newApplication(cfg, logger, db, stdout)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		if db != nil {
			_ = db.Close()
		}
		return 1
	}

	if opts.once {
		defer app.cleanup()
		return exitCode(app.runOnce(ctx), logger)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("application stopped with error", "error", err)
		return 1
	}
	return 0
}

func exitCode(ok bool, logger *slog.Logger) int {
	if ok {
		return 0
	}
	logger.Warn("invocation reported failure")
	return 1
}
