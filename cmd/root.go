package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termfolio/internal/config"
	"github.com/ziadkadry99/termfolio/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "A tiling-desk portfolio for the browser and the terminal",
	Long: `termfolio turns a directory of markdown posts and projects into a
portfolio laid out like a tiling window manager. Serve it over HTTP, browse
it in the terminal, build static feeds, or expose it to AI agents via MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
