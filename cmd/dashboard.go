package cmd

import (
	"strconv"

	"vanguard/pkg/number"
	"vanguard/pkg/table"
	svc "vanguard/service/listing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "counts and totals across listings, customers and staff",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		client := provideClient(ctx, sessions)
		summary, err := svc.Summarize(ctx, provideListingStore(client), provideDirectoryStore(client))
		if err != nil {
			return err
		}

		money := func(d decimal.Decimal) string {
			return number.Display(decimal.NewNullDecimal(d.Round(2)))
		}

		cmd.Println(table.Title("dashboard"))
		cmd.Println(table.Render([]string{"", "COUNT", "TOTAL"}, [][]string{
			{"Assets", strconv.Itoa(summary.Assets), money(summary.AssetTotal)},
			{"Coins", strconv.Itoa(summary.Coins), money(summary.CoinMarketTotal)},
			{"Customers", strconv.Itoa(summary.Customers), ""},
			{"Staff", strconv.Itoa(summary.Staff), ""},
		}))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
