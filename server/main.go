package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/burntcarrot/richpad/config"
)

func main() {
	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "richpad-server",
		Usage:           "serves rich text editing surfaces over websocket",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE` (YAML)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "network address to listen on, overrides the configuration",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level",
			},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		color.Red("Error starting server, exiting: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("addr") {
		cfg.Server.Addr = cmd.String("addr")
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = logrus.DebugLevel.String()
	}

	dir, err := config.LogDir()
	if err != nil {
		return fmt.Errorf("unable to prepare log directory: %w", err)
	}
	logger := logrus.New()
	files, err := config.SetupLogger(logger, cfg.Logging, dir)
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	defer func() {
		if er := files.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}()

	sheet, err := cfg.Stylesheet()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", newServer(cfg, sheet, logger).handleConn)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	color.Green("Starting server on %s\n", cfg.Server.Addr)
	logger.WithField("addr", cfg.Server.Addr).Info("server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
