// Command matrixterm shows an editable order sheet in the terminal.
//
//	go run ./cmd/matrixterm
//	go run ./cmd/matrixterm --config sheet.toml --rows 40
//
// Sizes in the config file are in character cells.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/matrix"
	"github.com/go-theft-auto/matrix/backend/term"
	"github.com/go-theft-auto/matrix/internal/demo"
)

type flags struct {
	config  string
	rows    int
	cols    int
	dark    bool
	logFile string
	verbose bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:          "matrixterm",
		Short:        "Edit a grid of cells in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML grid configuration")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "number of data rows (overrides config)")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "number of data columns (overrides config)")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "use the dark palette")
	cmd.Flags().StringVar(&f.logFile, "log", "", "write logs to this file")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log debug output")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(f flags) error {
	// The terminal belongs to the UI; logs go to a file or nowhere.
	if f.logFile != "" {
		lf, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer lf.Close()
		level := slog.LevelInfo
		if f.verbose {
			level = slog.LevelDebug
		}
		matrix.SetLogger(slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: level})))
	} else {
		matrix.SetLogger(slog.New(slog.DiscardHandler))
	}

	cfg := term.DefaultConfig()
	cfg.Mark = matrix.MarkConfig{Mode: "cell", Area: "continuous", Multiple: true}
	if f.config != "" {
		var err error
		if cfg, err = cfg.Load(f.config); err != nil {
			return err
		}
	}
	if f.rows > 0 {
		cfg.Rows = f.rows
	}
	if f.cols > 0 {
		cfg.Columns = f.cols
	}
	if f.dark {
		cfg.Colors.Theme = "dark"
	}

	grid, err := matrix.NewFromConfig(cfg, term.Options()...)
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if len(cfg.ColumnTitles) == 0 {
		demo.Populate(grid)
	}
	grid.SetCallbacks(demo.Callbacks(grid))

	p := tea.NewProgram(term.NewModel(grid),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
