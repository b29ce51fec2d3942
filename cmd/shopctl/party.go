package main

import (
	"fmt"

	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"github.com/spf13/cobra"
)

const (
	kindCredit   = "credit"
	kindSupplier = "supplier"
)

func checkKind(kind string) error {
	if kind != kindCredit && kind != kindSupplier {
		return fmt.Errorf("--kind must be %q or %q, got %q", kindCredit, kindSupplier, kind)
	}
	return nil
}

func newSummaryCmd(s *session) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "summary <party>",
		Short:   "Show the balance of a credit customer or a supplier",
		Example: `  shopctl summary --kind supplier "Acme Traders"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}
			app, err := s.App()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if kind == kindSupplier {
				summary, err := app.Services.Supplier.SupplierSummary(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			}
			summary, err := app.Services.Credit.CustomerSummary(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindCredit, "Party kind: credit or supplier")
	return cmd
}

func newSettleCmd(s *session) *cobra.Command {
	var kind, date, notes string

	cmd := &cobra.Command{
		Use:   "settle <party>",
		Short: "Mark every open bill of a party as fully paid",
		Long: `Pay off every open bill of a credit customer or supplier, recording one
payment per bill for its remaining balance. Settling a party with nothing
outstanding changes nothing.`,
		Example: `  shopctl settle --kind credit "Ravi Stores" --date 2024-03-31 --notes "year end"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}
			day, err := utils.ParseDate(date)
			if err != nil {
				return err
			}
			app, err := s.App()
			if err != nil {
				return err
			}

			input := &service.PaymentInput{Date: day, Notes: notes}
			var outcome *service.PaymentOutcome
			if kind == kindSupplier {
				outcome, err = app.Services.Supplier.SettleSupplier(cmd.Context(), args[0], input)
			} else {
				outcome, err = app.Services.Credit.PayCustomer(cmd.Context(), args[0], input)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), outcome)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindCredit, "Party kind: credit or supplier")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD), today when empty")
	cmd.Flags().StringVar(&notes, "notes", "Settled via shopctl", "Note stored on each payment")
	return cmd
}

func newPayCmd(s *session) *cobra.Command {
	var kind, amount, date, notes string

	cmd := &cobra.Command{
		Use:   "pay <party>",
		Short: "Record a payment against a party's open bills, oldest first",
		Long: `Spread a payment over the open bills of a credit customer or supplier,
oldest bill first. Any amount above what the party owes is reported as
unapplied and not stored.`,
		Example: `  shopctl pay --kind supplier --amount 2500 "Acme Traders"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}
			value, err := settlement.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			day, err := utils.ParseDate(date)
			if err != nil {
				return err
			}
			app, err := s.App()
			if err != nil {
				return err
			}

			input := &service.PaymentInput{Amount: &value, Date: day, Notes: notes}
			var outcome *service.PaymentOutcome
			if kind == kindSupplier {
				outcome, err = app.Services.Supplier.PaySupplier(cmd.Context(), args[0], input)
			} else {
				outcome, err = app.Services.Credit.PayCustomer(cmd.Context(), args[0], input)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), outcome)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindCredit, "Party kind: credit or supplier")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount received or paid")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD), today when empty")
	cmd.Flags().StringVar(&notes, "notes", "", "Note stored on each payment")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
