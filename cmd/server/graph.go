package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/f1r3sky/wallet-backend/internal/adapter/repository/postgres"
	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/balancegraph"
	"github.com/f1r3sky/wallet-backend/internal/usecase/dashboard"
)

func newGraphCmd() *cobra.Command {
	var address, scale string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Prints the balance graph of a wallet",
		Long:  `Reconstructs a wallet's balance series from the database and prints its points and axis labels.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			parsedAddress, err := domain.ParseAddress(address)
			if err != nil {
				return err
			}
			parsedScale, err := balancegraph.ParseScale(scale)
			if err != nil {
				return err
			}

			db, err := connect(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			service := dashboard.NewDashboardService(postgres.NewWalletStateRepository(db), time.Now)
			graph, err := service.GetBalanceGraph(cmd.Context(), parsedAddress, parsedScale)
			if err != nil {
				return err
			}

			printGraph(cmd, graph)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "wallet address (REV or 0x-prefixed Ethereum)")
	cmd.Flags().StringVar(&scale, "scale", string(balancegraph.DefaultScale), "graph scale: 1H, 1D, 1W, 1M, 3M or 6M")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func printGraph(cmd *cobra.Command, graph *dashboard.BalanceGraph) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "------------- BALANCE %s -----------------\n", graph.Window.Scale)
	for i, point := range graph.Points {
		fmt.Fprintf(out, "#%03d - %s  %s\n",
			i+1,
			point.Timestamp.Format(time.RFC3339),
			humanize.BigComma(point.Value.BigInt()),
		)
	}

	fmt.Fprintln(out, "------------- LABELS -----------------")
	for _, label := range graph.Labels {
		fmt.Fprintf(out, "%s (%s)\n", label.Format(time.DateTime), humanize.RelTime(label, graph.Window.Max, "before", "after"))
	}
}
