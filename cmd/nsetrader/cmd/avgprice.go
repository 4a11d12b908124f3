package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"nsetrader/avgprice"
	"nsetrader/prompt"
)

var avgpriceCmd = &cobra.Command{
	Use:   "avgprice [qty:price ...]",
	Short: "Compute the average acquisition price over multiple orders",
	Long: `Compute the volume-weighted average price of units bought in multiple
orders. Lots can be passed as qty:price arguments, or entered interactively
(press Enter on an empty quantity to finish).

Examples:
  nsetrader avgprice 10:1520.50 5:1498 20:1505.25
  nsetrader avgprice`,
	RunE: runAvgPrice,
}

func init() {
	rootCmd.AddCommand(avgpriceCmd)
}

func runAvgPrice(cmd *cobra.Command, args []string) error {
	var calc avgprice.Calculator

	if len(args) > 0 {
		for _, arg := range args {
			qty, price, err := parseLot(arg)
			if err != nil {
				return err
			}
			if err := calc.Add(qty, price); err != nil {
				return err
			}
		}
	} else {
		readLots(&calc, prompt.NewTerminal(os.Stdin, os.Stdout))
	}

	avg, ok := calc.Average()
	if !ok {
		fmt.Println("No orders entered")
		return nil
	}
	fmt.Printf("Average price of %d units: %.2f\n", calc.Quantity(), avg)
	return nil
}

func parseLot(arg string) (int, float64, error) {
	var qty int
	var price float64
	if _, err := fmt.Sscanf(arg, "%d:%f", &qty, &price); err != nil {
		return 0, 0, fmt.Errorf("lot %q: want qty:price", arg)
	}
	return qty, price, nil
}

// readLots loops on the terminal until the user enters a blank quantity.
// Bad values are re-asked, matching how the tool has always behaved.
func readLots(calc *avgprice.Calculator, p prompt.Prompter) {
	for {
		qtyStr := p.Ask("Enter quantity (press Enter to exit): ")
		if qtyStr == "" {
			return
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			fmt.Println("Incorrect value. Try again")
			continue
		}

		for {
			price, err := strconv.ParseFloat(p.Ask("Enter price: "), 64)
			if err != nil || price <= 0 {
				fmt.Println("Incorrect value. Try again")
				continue
			}
			calc.Add(qty, price)
			break
		}
	}
}
