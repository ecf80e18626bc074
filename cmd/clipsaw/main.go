package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"clipsaw/internal/config"
	"clipsaw/internal/export"
	"clipsaw/internal/logging"
	"clipsaw/internal/pipeline"
	"clipsaw/internal/transcribe"
	"clipsaw/pkg/util"
)

var version = "dev"

var (
	cfgFile   string
	verbose   bool
	subtitles bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipsaw",
	Short: "clipsaw - audio-activity clip extraction",
	Long:  "Finds the interesting parts of long recordings by audio activity and cuts them into clips, optionally transcribed and subtitled.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./clipsaw.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	exportCmd.Flags().BoolVar(&subtitles, "subtitles", false, "transcribe clips and burn subtitles")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input video]",
	Short: "Analyze audio activity and list candidate clips",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		result, err := pipe.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if result.Empty {
			log.Info().Str("input", args[0]).Msg("no activity above threshold")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Start", "End", "Duration", "Score"})
		for i, seg := range result.Segments {
			t.AppendRow(table.Row{
				i + 1,
				util.FormatDuration(seg.Start),
				util.FormatDuration(seg.End),
				seg.Duration().Round(10 * time.Millisecond),
				fmt.Sprintf("%.4f", seg.Score),
			})
		}
		t.Render()

		log.Info().
			Str("run_id", result.RunID.String()).
			Int("segments", len(result.Segments)).
			Msg("analysis complete")

		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [input video]",
	Short: "Analyze and cut clips to disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		result, err := pipe.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if result.Empty {
			log.Info().Str("input", args[0]).Msg("no activity above threshold, nothing to export")
			return nil
		}

		var transcriber transcribe.Transcriber
		if subtitles {
			transcriber, err = transcribe.NewWhisperCLI(log.Logger, cfg.Transcribe.Binary, cfg.Transcribe.Model, cfg.Transcribe.Language)
			if err != nil {
				return err
			}
		}

		exporter := export.New(log.Logger, cfg, pipe.Executor(), transcriber)

		bar := progressbar.Default(int64(len(result.Segments)), "exporting clips")
		clips, err := exporter.Export(cmd.Context(), args[0], result.Duration, result.Segments,
			func(done, total int, clip export.Clip) {
				_ = bar.Add(1)
			})
		_ = bar.Finish()
		if err != nil {
			return err
		}

		for _, clip := range clips {
			log.Info().
				Int("clip", clip.Index).
				Str("title", clip.Title).
				Str("plain", clip.PlainPath).
				Str("subtitled", clip.SubtitledPath).
				Msg("clip written")
		}

		log.Info().
			Str("run_id", result.RunID.String()).
			Int("clips", len(clips)).
			Msg("export complete")

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "clipsaw.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if util.FileExists(path) {
			return fmt.Errorf("refusing to overwrite existing config: %s", path)
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("clipsaw", version)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
