package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"RentMarket/internal/model"
	"RentMarket/internal/report"
)

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the market advanced to the current time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.exec.State()
			if err != nil {
				return err
			}
			prices := make(map[model.Resource]model.Asset, len(model.Resources))
			for _, r := range model.Resources {
				if p, err := a.exec.Price(r); err == nil {
					prices[r] = p
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatState(&s, prices))
			return nil
		},
	}
}

func ordersCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List outstanding rentals, soonest maturity first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			orders, err := a.exec.Orders(limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatOrders(orders, model.TimestampOf(time.Now())))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum orders to list, 0 for all")
	return cmd
}
