package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/config"
	"github.com/burntcarrot/richpad/tui"
)

// Flags represents the command-line flags that are passed to richpad's client.
type Flags struct {
	Server string
	Secure bool
	File   string
	Debug  bool
}

func main() {
	app := &cli.Command{
		Name:            "richpad",
		Usage:           "edit rich text in the terminal",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: "localhost:8080",
				Usage: "The network address of the server",
			},
			&cli.BoolFlag{
				Name:  "secure",
				Usage: "Enable a secure WebSocket connection (wss://)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debugging mode to show more verbose logs",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "The HTML `FILE` to load the document from",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(Flags{
				Server: cmd.String("server"),
				Secure: cmd.Bool("secure"),
				File:   cmd.String("file"),
				Debug:  cmd.Bool("debug"),
			})
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}

func run(flags Flags) (err error) {
	logger := logrus.New()

	logCfg := config.Default().Logging
	logCfg.File = "richpad-client.log"
	logCfg.DebugFile = "richpad-client-debug.log"
	if flags.Debug {
		logCfg.Level = logrus.DebugLevel.String()
	}

	dir, err := config.LogDir()
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	files, err := config.SetupLogger(logger, logCfg, dir)
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer func() {
		if er := files.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}()

	conn, _, err := createConn(flags)
	if err != nil {
		return fmt.Errorf("connection error, exiting: %w", err)
	}
	defer conn.Close()

	send := func(msg commons.Message) error {
		return conn.WriteJSON(msg)
	}

	if flags.File != "" {
		data, err := os.ReadFile(flags.File)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", flags.File, err)
		}
		if err := send(commons.Message{Type: commons.LoadMessage, HTML: string(data)}); err != nil {
			return err
		}
	}
	if err := send(commons.Message{Type: commons.FocusMessage}); err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(tui.Config{
		Send:      send,
		Clipboard: tui.SystemClipboard{},
		Logger:    logger,
	}), tea.WithAltScreen())

	go readMessages(conn, p, logger)

	return p.Start()
}

// serverURL returns the WebSocket URL of the server.
func serverURL(flags Flags) url.URL {
	if flags.Secure {
		return url.URL{Scheme: "wss", Host: flags.Server, Path: "/"}
	}
	return url.URL{Scheme: "ws", Host: flags.Server, Path: "/"}
}

// createConn creates a WebSocket connection.
func createConn(flags Flags) (*websocket.Conn, *http.Response, error) {
	u := serverURL(flags)

	dialer := websocket.Dialer{
		HandshakeTimeout: 2 * time.Minute,
	}

	return dialer.Dial(u.String(), nil)
}

// readMessages forwards the messages read from the connection to the program.
func readMessages(conn *websocket.Conn, p *tea.Program, logger *logrus.Logger) {
	for {
		var msg commons.Message

		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("websocket error: %v", err)
			}
			p.Send(tui.ServerMsg{Type: commons.ErrorMessage, Error: "connection closed"})
			return
		}

		logger.Debugf("message received: %+v", msg)
		p.Send(tui.ServerMsg(msg))
	}
}
