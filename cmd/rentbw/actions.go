package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"RentMarket/internal/calculator"
	"RentMarket/internal/config"
	"RentMarket/internal/model"
	"RentMarket/internal/report"
)

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure <proposal.yaml>",
		Short: "Apply a market configuration proposal",
		Long: `Apply a YAML proposal to the market. The first proposal must be
complete; later ones may list only the settings to change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := config.LoadProposal(args[0])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.exec.Configure(update)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatState(&s, nil))
			return nil
		},
	}
}

func tickCmd() *cobra.Command {
	var (
		caller   string
		maxBatch uint16
	)
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the market and release matured rentals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if maxBatch == 0 {
				maxBatch = a.cfg.Schedule.MaxBatch
			}
			res, err := a.exec.Tick(caller, maxBatch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drained %d orders\n", len(res.Drained))
			return nil
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "operator", "account credited with the tick")
	cmd.Flags().Uint16Var(&maxBatch, "max-batch", 0, "orders to drain (default from config)")
	return cmd
}

// parseFrac turns a fraction such as "0.01" into units of 10^-15.
func parseFrac(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("fraction %q: %w", s, err)
	}
	return d.Mul(decimal.NewFromInt(calculator.Frac)).IntPart(), nil
}

func rentCmd() *cobra.Command {
	var (
		req        model.RentRequest
		net, cpu   string
		maxPayment string
		quoteOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "rent",
		Short: "Rent a fraction of the current net and cpu weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.NetFrac, err = parseFrac(net); err != nil {
				return err
			}
			if req.CPUFrac, err = parseFrac(cpu); err != nil {
				return err
			}
			if req.MaxPayment, err = model.ParseAsset(maxPayment); err != nil {
				return err
			}
			if req.Receiver == "" {
				req.Receiver = req.Payer
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if quoteOnly {
				q, err := a.exec.Quote(req)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.FormatQuote(q))
				return nil
			}
			receipt, err := a.exec.Rent(req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatReceipt(receipt))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Payer, "payer", "", "paying account")
	f.StringVar(&req.Receiver, "receiver", "", "account receiving the capacity (default payer)")
	f.Uint32Var(&req.Days, "days", 30, "rental term in days, must match rent_days")
	f.StringVar(&net, "net", "", "fraction of net weight to rent, e.g. 0.01")
	f.StringVar(&cpu, "cpu", "", "fraction of cpu weight to rent, e.g. 0.01")
	f.StringVar(&maxPayment, "max-payment", "", `largest acceptable fee, e.g. "10.0000 EOS"`)
	f.BoolVar(&quoteOnly, "quote", false, "print the fee without renting")
	cmd.MarkFlagRequired("payer")
	cmd.MarkFlagRequired("max-payment")
	return cmd
}
