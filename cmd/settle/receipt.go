package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/receipt"
)

func receiptCmd() *cobra.Command {
	var (
		paidBy       string
		participants []string
	)

	cmd := &cobra.Command{
		Use:   "receipt <file>",
		Short: "Read a draft expense from receipt text",
		Example: `  settle receipt lunch.txt
  settle receipt lunch.txt --paid-by alice --participant alice --participant bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read receipt: %w", err)
			}

			draft, err := receipt.Parse(string(text))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store:       %s\n", draft.Store)
			fmt.Fprintf(out, "Description: %s\n", draft.Description)
			if draft.Amount > 0 {
				fmt.Fprintf(out, "Amount:      %s\n", draft.Amount)
			} else {
				fmt.Fprintln(out, "Amount:      (not found)")
			}
			if draft.Date != "" {
				fmt.Fprintf(out, "Date:        %s\n", draft.Date)
			}
			fmt.Fprintf(out, "Category:    %s\n", draft.Category)

			if len(participants) == 0 {
				return nil
			}
			if paidBy == "" {
				paidBy = participants[0]
			}
			expense, err := draft.Expense("", paidBy, participants)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Paid by:     %s\n", expense.PaidBy)
			for _, id := range models.SplitParticipants(expense.Split) {
				fmt.Fprintf(out, "  %-12s %10s\n", id, expense.Split[id])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&paidBy, "paid-by", "", "member who paid; defaults to the first participant")
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "member sharing the receipt equally")
	return cmd
}
