package cmd

import (
	"vanguard/core"
	"vanguard/internal/listing"

	"github.com/spf13/cobra"
)

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "manage a single listing",
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "flip the active flag of a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, session, err := openView(ctx, 0)
		if err != nil {
			return err
		}
		defer view.Close()

		if session == nil {
			return core.ErrSessionNotFound
		}

		if err := view.ToggleActive(ctx, args[0]); err != nil {
			return err
		}

		item, _ := listing.Find(view.Items(), args[0])
		cmd.Printf("%s active=%v\n", item.ID, item.IsActive)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, session, err := openView(ctx, 0)
		if err != nil {
			return err
		}
		defer view.Close()

		if session == nil {
			return core.ErrSessionNotFound
		}

		if err := view.Remove(ctx, args[0]); err != nil {
			return err
		}

		cmd.Println("deleted", args[0])
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "edit the common fields of a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		view, session, err := openView(ctx, 0)
		if err != nil {
			return err
		}
		defer view.Close()

		if session == nil {
			return core.ErrSessionNotFound
		}

		item, ok := listing.Find(view.Items(), args[0])
		if !ok {
			return &core.Error{Code: core.ErrListingNotFound, Op: "edit", Msg: args[0]}
		}

		edited := *item
		flags := cmd.Flags()

		if flags.Changed("name") {
			edited.Name, _ = flags.GetString("name")
		}

		if flags.Changed("category") {
			edited.Category, _ = flags.GetString("category")
		}

		if flags.Changed("overview") {
			edited.Overview, _ = flags.GetString("overview")
		}

		if flags.Changed("risk") {
			v, _ := flags.GetString("risk")
			if edited.Risk = core.ParseRisk(v); edited.Risk == "" {
				return &core.Error{Code: core.ErrInvalidForm, Op: "edit", Msg: "risk must be Low, Medium or High"}
			}
		}

		if flags.Changed("featured") {
			edited.IsFeatured, _ = flags.GetBool("featured")
		}

		if err := view.Save(ctx, &edited); err != nil {
			return err
		}

		cmd.Println("saved", edited.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listingCmd)
	listingCmd.AddCommand(toggleCmd)
	listingCmd.AddCommand(deleteCmd)
	listingCmd.AddCommand(editCmd)

	editCmd.Flags().String("name", "", "name")
	editCmd.Flags().String("category", "", "category")
	editCmd.Flags().String("overview", "", "overview")
	editCmd.Flags().String("risk", "", "Low, Medium or High")
	editCmd.Flags().Bool("featured", false, "featured")
}
