package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCleanupCmd(s *session) *cobra.Command {
	var (
		billingDays      int
		supplierDays     int
		expenseDays      int
		inactiveProducts bool
		dryRun           bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete records older than the retention windows",
		Long: `Delete sales, supplier bills and expenses older than the given number of
days. Sales go with their items and payments, supplier bills with their
payments. Expired idempotency keys are always removed.

Flags left unset use the RETENTION_* settings. A value of 0 skips that table.`,
		Example: `  shopctl cleanup --dry-run
  shopctl cleanup --billing-days 30 --inactive-products`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.App()
			if err != nil {
				return err
			}

			opts := app.RetentionDefaults()
			if cmd.Flags().Changed("billing-days") {
				opts.BillingDays = billingDays
			}
			if cmd.Flags().Changed("supplier-days") {
				opts.SupplierDays = supplierDays
			}
			if cmd.Flags().Changed("expense-days") {
				opts.ExpenseDays = expenseDays
			}
			opts.InactiveProducts = inactiveProducts
			opts.DryRun = dryRun

			report, err := app.Services.Maintenance.Cleanup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			app.Logger.Info("Cleanup finished",
				zap.Bool("dry_run", report.DryRun),
				zap.Int64("sales", report.Sales),
				zap.Int64("supplier_bills", report.SupplierBills),
				zap.Int64("expenses", report.Expenses),
			)
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&billingDays, "billing-days", 45, "Keep sales newer than this many days")
	cmd.Flags().IntVar(&supplierDays, "supplier-days", 60, "Keep supplier bills newer than this many days")
	cmd.Flags().IntVar(&expenseDays, "expense-days", 7, "Keep expenses newer than this many days")
	cmd.Flags().BoolVar(&inactiveProducts, "inactive-products", false, "Also delete products with zero stock")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count what would be deleted without deleting")
	return cmd
}
