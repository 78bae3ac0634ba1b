package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"billpay/pkg/audit"
	"billpay/pkg/browser"
	"billpay/pkg/config"
	"billpay/pkg/intacct"
	"billpay/pkg/ledger"
	"billpay/pkg/prompt"
	"billpay/pkg/session"
)

var version = "dev"

var (
	cfgFile     string
	planVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "billpay",
	Short: "Reconcile a payment ledger against open Intacct bills and record payments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process open bills against the ledger in the attached browser session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		profile := intacct.DefaultProfile()
		if cfg.ProfilePath != "" {
			profile, err = intacct.LoadProfile(cfg.ProfilePath)
			if err != nil {
				return err
			}
		}

		rows, err := ledger.Load(cfg.LedgerPath)
		if err != nil {
			return err
		}
		logger.Info("ledger loaded", "path", cfg.LedgerPath, "rows", len(rows))

		auditLog, err := audit.Open(cfg.SuccessPath, cfg.ErrorPath, logger)
		if err != nil {
			return err
		}

		prompter := prompt.NewStdio()
		sess, err := session.Setup(prompter, auditLog, cfg.BatchSize)
		if err != nil {
			return err
		}

		drv, err := browser.Connect(browser.ConnectOptions{
			CDPAddress:    cfg.CDPAddress,
			URLSubstring:  profile.URLSubstring,
			FrameSelector: profile.FrameSelector,
		}, logger)
		if err != nil {
			return session.Fatal(err)
		}
		defer drv.Close()

		grid := intacct.NewGrid(drv, logger)
		grid.LoadTimeout = cfg.LoadTimeout
		grid.ProbeTimeout = cfg.ProbeTimeout
		filters := intacct.NewFilters(drv, grid, logger)
		form := intacct.NewForm(drv, grid, profile, logger)
		form.SettleDelay = cfg.SettleDelay

		controller := session.New(grid, filters, form, ledger.NewMatcher(rows), auditLog, prompter, logger)
		return controller.Run(sess)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview how each ledger invoice would be classified (no browser)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		rows, err := ledger.Load(cfg.LedgerPath)
		if err != nil {
			return err
		}
		auditLog, err := audit.Open(cfg.SuccessPath, cfg.ErrorPath, logger)
		if err != nil {
			return err
		}
		skipSet, err := auditLog.SkipSet()
		if err != nil {
			return err
		}

		matcher := ledger.NewMatcher(rows)
		counts := map[string]int{}

		fmt.Printf("Plan preview for %s\n", cfg.LedgerPath)
		for _, invoice := range matcher.Invoices() {
			result := matcher.Match(invoice)

			status := result.Status.String()
			if _, seen := skipSet[ledger.Normalize(invoice)]; seen {
				status = "resume-skip"
			}
			counts[status]++

			detail := result.Reason
			if result.Status == ledger.Success {
				detail = fmt.Sprintf("payment %s covering %d invoice(s)", result.PaymentNumber, len(result.Group))
			}
			fmt.Printf("  %-12s %-10s %s\n", invoice, status, detail)

			if planVerbose {
				pp.Println(result)
			}
		}

		fmt.Println("Summary:")
		for _, status := range []string{"success", "skip", "error", "resume-skip"} {
			if counts[status] > 0 {
				fmt.Printf("  %s: %d\n", status, counts[status])
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the billpay version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("billpay %s\n", version)
	},
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "billpay",
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is billpay.yaml)")

	for _, cmd := range []*cobra.Command{runCmd, planCmd} {
		cmd.Flags().String("ledger", "bills.csv", "Ledger export to reconcile (.csv or .xlsx)")
		cmd.Flags().String("profile", "", "Deployment profile yaml (selectors, bank/card labels)")
	}
	runCmd.Flags().String("cdp_address", "http://localhost:9222", "DevTools endpoint of the running browser")

	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Dump full match results")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
