package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f1r3sky/wallet-backend/internal/domain"
)

func newDeriveCmd() *cobra.Command {
	var (
		key      string
		ethereum bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Prints the wallet address of a private key",
		Long:  `Derives the F1R3CAP (REV) address of a hex-encoded secp256k1 private key, or its Ethereum address with --ethereum.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			derive := domain.NewRevWalletFromPrivateKey
			if ethereum {
				derive = domain.NewEthereumWalletFromPrivateKey
			}

			wallet, err := derive(key)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", wallet.Type, wallet.Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "hex-encoded private key")
	cmd.Flags().BoolVar(&ethereum, "ethereum", false, "derive an Ethereum address instead of a REV address")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
