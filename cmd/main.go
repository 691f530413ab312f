package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/richinsley/goshaderfetch/api"
	"github.com/richinsley/goshaderfetch/archive"
	"github.com/richinsley/goshaderfetch/options"
)

func newRootCmd() *cobra.Command {
	opts := &options.FetchOptions{}

	cmd := &cobra.Command{
		Use:   "goshaderfetch <shaderIdOrUrl> [outputDir]",
		Short: "Download a Shadertoy project for offline use",
		Long: `goshaderfetch fetches one shader project from shadertoy.com by its ID or
view URL and writes its render pass sources, referenced media assets and a
description.json to a local directory.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ShaderInput = args[0]
			if len(args) > 1 {
				opts.OutputDir = args[1]
			}
			opts.Timeout = viper.GetDuration("timeout")
			opts.Quiet = viper.GetBool("quiet")
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().Duration("timeout", api.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().Bool("quiet", false, "only log warnings and errors")

	viper.SetEnvPrefix("SHADERFETCH")
	viper.AutomaticEnv()
	for _, name := range []string{"timeout", "quiet"} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	return cmd
}

// run is the whole pipeline: resolve the identifier, fetch the record,
// materialize assets and sources, persist the description. Every fatal
// condition surfaces here as an error; the exit-code mapping happens once
// in main.
func run(ctx context.Context, opts *options.FetchOptions) error {
	level := slog.LevelInfo
	if opts.Quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	shaderID, err := api.ResolveShaderID(opts.ShaderInput)
	if err != nil {
		return err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = shaderID
	}

	client := api.NewClient(
		api.WithBaseURLs(opts.APIBase, opts.MediaBase),
		api.WithTimeout(opts.Timeout),
	)

	logger.Info("fetching shader", "id", shaderID)
	record, err := client.FetchRecord(ctx, shaderID)
	if err != nil {
		return fmt.Errorf("failed to fetch shader %s: %w", shaderID, err)
	}
	info := record[0].Info
	logger.Info(fmt.Sprintf("%q by %s", info.Name, info.Username))

	m := archive.New(client, outDir, logger)
	if err := m.Run(ctx, record); err != nil {
		return err
	}
	if err := m.WriteDescription(record); err != nil {
		return err
	}

	logger.Info("shader archived", "dir", outDir)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stdout, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
