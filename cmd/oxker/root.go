package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/RandyMcMillan/oxker/internal/app"
	"github.com/RandyMcMillan/oxker/internal/docker"
	"github.com/RandyMcMillan/oxker/internal/gui"
	"github.com/RandyMcMillan/oxker/internal/input"
	"github.com/RandyMcMillan/oxker/internal/ui"
)

// Version is set via ldflags at build time:
// go build -ldflags "-X main.Version=v1.0.0"
var Version = "dev"

var (
	flagPollRate time.Duration
	flagHost     string
	flagLogFile  string
	flagNoMouse  bool
)

var rootCmd = &cobra.Command{
	Use:     "oxker",
	Short:   "A terminal dashboard for docker containers",
	Version: Version,
	Long: `oxker is an interactive terminal dashboard for docker containers.
It shows state, resource usage, and logs for every container on the host,
and can pause, restart, stop, delete, or exec into the selected one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().DurationVar(&flagPollRate, "poll-rate", docker.DefaultPollRate,
		"how often container data is refreshed")
	rootCmd.Flags().StringVar(&flagHost, "host", "",
		"docker daemon host, e.g. unix:///var/run/docker.sock (defaults to DOCKER_HOST)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "",
		"append internal logs to this file (discarded when unset)")
	rootCmd.Flags().BoolVar(&flagNoMouse, "no-mouse", false,
		"start without mouse capture")
}

func run(ctx context.Context) error {
	closeLog, err := initLogging(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := docker.NewClient(flagHost)
	if err != nil {
		return fmt.Errorf("docker client: %w", err)
	}
	defer client.Close()

	appData := app.NewAppData()
	guiState := gui.NewGuiState()
	var running atomic.Bool
	running.Store(true)

	inputCh := make(chan input.Message, 32)
	commandCh := make(chan docker.Command, 32)

	driver := docker.NewDriver(client, appData, guiState, commandCh, &running, flagPollRate)
	if err := driver.Init(ctx); err != nil {
		// The render loop shows the connection error and counts down to exit.
		log.Printf("daemon ping failed: %v", err)
	}
	go driver.Run(ctx)

	controller := ui.NewProgramController()
	handler := input.NewHandler(appData, guiState, commandCh, inputCh, &running, controller)
	handler.SetMouseCaptureEnabled(!flagNoMouse)
	go handler.Run()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !flagNoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(ui.NewModel(appData, guiState, inputCh, &running), opts...)
	controller.SetProgram(p)

	_, runErr := p.Run()
	running.Store(false)
	close(inputCh)
	if runErr != nil {
		return fmt.Errorf("terminal: %w", runErr)
	}
	return nil
}

// initLogging routes the standard logger away from the terminal: into the
// given file, or discarded entirely.
func initLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags)
	return func() { f.Close() }, nil
}
