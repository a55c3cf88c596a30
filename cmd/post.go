package cmd

import (
	"vanguard/core"
	"vanguard/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "publish a new listing",
}

var postAssetCmd = &cobra.Command{
	Use:   "asset",
	Short: "publish an asset listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		form := &core.AssetForm{}
		form.InvestmentName, _ = flags.GetString("name")
		form.Category, _ = flags.GetString("category")
		form.Duration, _ = flags.GetString("duration")
		form.Overview, _ = flags.GetString("overview")
		form.IsFeatured, _ = flags.GetBool("featured")

		risk, _ := flags.GetString("risk")
		form.Risk = core.Risk(risk)
		if r := core.ParseRisk(risk); r != "" {
			form.Risk = r
		}

		minimum, _ := flags.GetString("min")
		form.MinInvestment = number.Decimal(minimum)
		ret, _ := flags.GetString("return")
		form.ExpectedReturn = number.Decimal(ret)

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		if err := provideListingStore(provideClient(ctx, sessions)).CreateAsset(ctx, form); err != nil {
			return err
		}

		cmd.Println("published", form.InvestmentName)
		return nil
	},
}

var postCoinCmd = &cobra.Command{
	Use:   "coin",
	Short: "publish a coin listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		form := &core.CoinForm{}
		form.CoinName, _ = flags.GetString("name")
		form.Category, _ = flags.GetString("category")
		form.Overview, _ = flags.GetString("overview")
		form.Hours, _ = flags.GetInt64("hours")
		form.IsFeatured, _ = flags.GetBool("featured")

		risk, _ := flags.GetString("risk")
		form.Risk = core.Risk(risk)
		if r := core.ParseRisk(risk); r != "" {
			form.Risk = r
		}

		price, _ := flags.GetString("price")
		form.Price = number.Decimal(price)
		marketCap, _ := flags.GetString("market-cap")
		form.MarketCap = number.Decimal(marketCap)

		if flags.Changed("circulating-supply") {
			v, _ := flags.GetString("circulating-supply")
			form.CirculatingSupply = decimalPtr(v)
		}

		if flags.Changed("max-supply") {
			v, _ := flags.GetString("max-supply")
			form.MaxSupply = decimalPtr(v)
		}

		if flags.Changed("blockchain") {
			v, _ := flags.GetString("blockchain")
			form.Blockchain = &v
		}

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		if err := provideListingStore(provideClient(ctx, sessions)).CreateCoin(ctx, form); err != nil {
			return err
		}

		cmd.Println("published", form.CoinName)
		return nil
	},
}

func decimalPtr(s string) *decimal.Decimal {
	d := number.Decimal(s)
	return &d
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postAssetCmd)
	postCmd.AddCommand(postCoinCmd)

	for _, c := range []*cobra.Command{postAssetCmd, postCoinCmd} {
		c.Flags().String("name", "", "listing name")
		c.Flags().String("category", "", "category")
		c.Flags().String("overview", "", "overview")
		c.Flags().String("risk", "", "Low, Medium or High")
		c.Flags().Bool("featured", false, "feature the listing")
	}

	postAssetCmd.Flags().String("min", "0", "minimum investment")
	postAssetCmd.Flags().String("return", "0", "expected return")
	postAssetCmd.Flags().String("duration", "", "duration, e.g. 12 months")

	postCoinCmd.Flags().String("price", "0", "price")
	postCoinCmd.Flags().String("market-cap", "0", "market cap")
	postCoinCmd.Flags().Int64("hours", 0, "hours")
	postCoinCmd.Flags().String("circulating-supply", "", "circulating supply")
	postCoinCmd.Flags().String("max-supply", "", "max supply")
	postCoinCmd.Flags().String("blockchain", "", "blockchain")
}
