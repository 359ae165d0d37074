package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termfolio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize termfolio configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure your site and writes a .termfolio.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
