package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/report"
)

func planCmd() *cobra.Command {
	var (
		dust string
		top  int
	)

	cmd := &cobra.Command{
		Use:   "plan <ledger.json>",
		Short: "Print balances and the transfers that settle a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := money.Parse(dust)
			if err != nil {
				return fmt.Errorf("invalid --dust: %w", err)
			}

			l, err := loadLedger(args[0])
			if err != nil {
				return err
			}

			balances, err := calculator.ComputeLedgerBalances(l.memberIDs(), l.expenses, l.payments)
			if err != nil {
				return err
			}
			members := l.memberMap()
			settlements, err := calculator.Planner{Dust: threshold}.Plan(balances, members)
			if err != nil {
				return err
			}
			summary := calculator.Summarize(l.expenses, members, top)

			slog.Debug("Ledger planned",
				"expenses", len(l.expenses),
				"payments", len(l.payments),
				"settlements", len(settlements),
			)

			return report.Render(cmd.OutOrStdout(), report.Report{
				Title:       l.name,
				Members:     l.members,
				Expenses:    l.expenses,
				Balances:    balances,
				Settlements: settlements,
				Summary:     &summary,
			})
		},
	}

	cmd.Flags().StringVar(&dust, "dust", calculator.DefaultDust.String(), "smallest amount worth a transfer")
	cmd.Flags().IntVar(&top, "top", calculator.DefaultTopSpenders, "members to list under spending")
	return cmd
}
