package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nsetrader/charges"
)

var chargesCmd = &cobra.Command{
	Use:   "charges <buy-price> <sell-price> <quantity>",
	Short: "Compute brokerage, taxes and net P&L for an equity trade",
	Long: `Itemize the brokerage, taxes and statutory charges for an equity trade
and show the net P&L after costs.

Holding period selects the fee schedule: 0 days is intraday, 1 day is BTST,
more is delivery (which adds DP charges on the sell).

Examples:
  nsetrader charges 498 502 100
  nsetrader charges 1210 1250 40 --delta 5
  nsetrader charges 101 103 500 --etf --delta 2`,
	Args: cobra.ExactArgs(3),
	RunE: runCharges,
}

var (
	chargesDelta int
	chargesETF   bool
	chargesNoSTT bool
)

func init() {
	rootCmd.AddCommand(chargesCmd)

	chargesCmd.Flags().IntVarP(&chargesDelta, "delta", "d", 0, "holding period in days")
	chargesCmd.Flags().BoolVarP(&chargesETF, "etf", "e", false, "the instrument is an equity ETF")
	chargesCmd.Flags().BoolVarP(&chargesNoSTT, "no-stt", "n", false, "STT is not applicable")
}

func runCharges(cmd *cobra.Command, args []string) error {
	buy, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("buy price: %w", err)
	}
	sell, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("sell price: %w", err)
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if buy <= 0 || sell <= 0 || qty <= 0 {
		return fmt.Errorf("buy, sell and quantity must all be positive")
	}

	b := charges.Compute(charges.DefaultRates(), charges.Trade{
		Buy:         buy,
		Sell:        sell,
		Qty:         qty,
		HoldingDays: chargesDelta,
		ETF:         chargesETF,
		NoSTT:       chargesNoSTT,
	})

	fmt.Printf("Turnover:            %10.2f\n", b.Turnover)
	fmt.Printf("Brokerage:           %10.2f\n", b.Brokerage)
	fmt.Printf("STT:                 %10.2f\n", b.STT)
	fmt.Printf("Transaction charges: %10.2f\n", b.ExchangeTxn)
	fmt.Printf("GST:                 %10.2f\n", b.GST)
	fmt.Printf("SEBI charges:        %10.2f\n", b.SEBI)
	fmt.Printf("Stamp duty:          %10.2f\n", b.StampDuty)
	if b.DPCharges > 0 {
		fmt.Printf("DP charges:          %10.2f\n", b.DPCharges)
	}
	fmt.Printf("Total charges:       %10.2f\n", b.Total)
	fmt.Printf("Gross P&L:           %10.2f\n", b.GrossPL)
	fmt.Printf("Net P&L:             %10.2f\n", b.NetPL)
	return nil
}
