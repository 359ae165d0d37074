package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termfolio/internal/clientstore"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/logging"
	"github.com/ziadkadry99/termfolio/internal/tui"
)

// tuiGutter is the gap between terminal tiles, in cells.
const tuiGutter = 1

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	Long: `Opens the tiling desk full-screen in the terminal. Theme choices are
kept in the user config directory. Set TERMFOLIO_DEBUG=1 to log to
termfolio-debug.log.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("termfolio tui needs an interactive terminal; try `termfolio serve`")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The program owns the terminal, so logs go to a file or nowhere.
	if os.Getenv("TERMFOLIO_DEBUG") != "" {
		f, err := tea.LogToFile("termfolio-debug.log", "termfolio")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		log.SetDefault(logging.New(f, true))
	} else {
		logging.Discard()
	}

	lib, err := openContent(cfg)
	if err != nil {
		return err
	}

	stateDir := cfg.TUI.StateDir
	if stateDir == "" {
		if stateDir, err = clientstore.DefaultDir(); err != nil {
			return err
		}
	}

	d := desk.New(clientstore.NewFile(stateDir), deskOptions(cfg, cfg.TUI.BreakpointCols, tuiGutter))
	p := tea.NewProgram(tui.New(d, lib, cfg.Site.Title), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
