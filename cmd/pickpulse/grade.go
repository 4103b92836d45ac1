package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickpulse/internal/grading"
	"github.com/yourusername/pickpulse/internal/models"
	"github.com/yourusername/pickpulse/internal/repository"
	"github.com/yourusername/pickpulse/internal/service"
)

func newGradeCmd(configFile *string) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade settled picks into a performance report",
		Long: `Reads graded picks from a file or stdin and prints the performance report.
The input is either {"source": ..., "range": ..., "records": [...]} or a bare
array of records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), *configFile)
			if err != nil {
				return err
			}
			seasonStart, err := cfg.SeasonStartDate()
			if err != nil {
				return err
			}

			in, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			req, err := readPerformanceRequest(in)
			if err != nil {
				return err
			}

			svc := service.NewPerformanceService(
				grading.NewAggregator(grading.DefaultThresholds()),
				repository.NewRepositories(nil).GradedPicks,
				nil,
				seasonStart,
				cliLogger(cfg),
			)
			return writeJSON(cmd.OutOrStdout(), svc.Aggregate(req))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Graded picks file, or - for stdin")
	return cmd
}

func readPerformanceRequest(r io.Reader) (models.PerformanceRequest, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return models.PerformanceRequest{}, models.NewInputError("input", "is empty")
	}

	var req models.PerformanceRequest
	dec := json.NewDecoder(br)
	if first == '[' {
		err = dec.Decode(&req.Records)
	} else {
		err = dec.Decode(&req)
	}
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return models.PerformanceRequest{}, err
		}
		return models.PerformanceRequest{}, models.NewInputError("input", fmt.Sprintf("is not valid JSON: %v", err))
	}
	return req, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}
