package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickpulse/internal/models"
	"github.com/yourusername/pickpulse/internal/service"
	"github.com/yourusername/pickpulse/internal/upstream"
)

func newSlateCmd(configFile *string) *cobra.Command {
	var (
		input       string
		day         string
		useUpstream bool
	)

	cmd := &cobra.Command{
		Use:   "slate",
		Short: "Build a decision slate",
		Long: `Reads model output ({"day": ..., "slate": {...}}) from a file or stdin and
prints the ranked slate. With --upstream the model output is fetched from
the configured model service instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, *configFile)
			if err != nil {
				return err
			}
			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			log := cliLogger(cfg)

			fetcher := upstream.NewSlateClient(&cfg.Upstream, log)
			svc := service.NewDecisionService(engine, fetcher, log)

			if useUpstream {
				slate, err := svc.BuildFromUpstream(ctx, day)
				if err != nil {
					if errors.Is(err, upstream.ErrUpstreamDisabled) {
						return fmt.Errorf("%w: set upstream.enabled and upstream.slate_url", err)
					}
					return err
				}
				return writeJSON(cmd.OutOrStdout(), slate)
			}

			in, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			var req models.SlateRequest
			if err := json.NewDecoder(in).Decode(&req); err != nil {
				if errors.Is(err, models.ErrInvalidInput) {
					return err
				}
				return models.NewInputError("input", fmt.Sprintf("is not valid JSON: %v", err))
			}
			if day != "" {
				req.Day = day
			}

			return writeJSON(cmd.OutOrStdout(), svc.BuildSlate(ctx, req))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Model output file, or - for stdin")
	cmd.Flags().StringVar(&day, "day", "", "Slate date (YYYY-MM-DD or today); overrides the input's day")
	cmd.Flags().BoolVar(&useUpstream, "upstream", false, "Fetch model output from the upstream model service")
	return cmd
}
