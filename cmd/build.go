package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/progress"
	"github.com/ziadkadry99/termfolio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write feeds, the sitemap and detail pages as static files",
	Long: `Renders /rss.xml, /feed.json, /sitemap.xml and every post and project
page into the output directory, for hosting without termfolio serve.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to build.output_dir)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Build.OutputDir
	}

	lib, err := openContent(cfg)
	if err != nil {
		return err
	}

	web, err := site.New(site.Options{
		Meta:       feedMeta(cfg),
		Content:    lib,
		Audio:      &content.AudioProber{Base: cfg.Content.AudioBase},
		Breakpoint: cfg.Desk.Breakpoint,
	})
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pageCount, err := web.Generate(ctx, outputDir, progress.NewReporter("rendering"))
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
