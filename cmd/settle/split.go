package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

func splitCmd() *cobra.Command {
	var (
		amount       string
		splitType    string
		participants []string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Preview how an amount is split",
		Example: `  settle split --amount 100 --participant alice --participant bob --participant carol
  settle split --amount 200 --type percentage --participant alice=60 --participant bob=40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			total, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}
			st, err := models.ParseSplitType(splitType)
			if err != nil {
				return err
			}
			ids, values, err := parseParticipants(participants)
			if err != nil {
				return err
			}

			split, err := calculator.ResolveSplit(total, st, ids, values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range models.SplitParticipants(split) {
				fmt.Fprintf(out, "%-12s %10s\n", id, split[id])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "total amount, e.g. 42.50")
	cmd.Flags().StringVar(&splitType, "type", string(models.SplitEqual), "equal, custom or percentage")
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "participant id, optionally id=value for custom and percentage splits")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// parseParticipants splits "id=value" flags into IDs and values.
func parseParticipants(flags []string) ([]string, map[string]decimal.Decimal, error) {
	var ids []string
	values := make(map[string]decimal.Decimal)
	for _, f := range flags {
		id, raw, hasValue := strings.Cut(f, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, nil, fmt.Errorf("participant %q has no id", f)
		}
		if hasValue {
			v, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, nil, fmt.Errorf("participant %s: %q is not a number", id, raw)
			}
			values[id] = v
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, values, nil
}
