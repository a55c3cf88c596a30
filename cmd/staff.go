package cmd

import (
	"strconv"

	"vanguard/core"
	"vanguard/pkg/table"

	"github.com/spf13/cobra"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "list staff members",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		staff, err := provideDirectoryStore(provideClient(ctx, sessions)).ListStaff(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(staff))
		for _, p := range staff {
			rows = append(rows, []string{strconv.FormatInt(p.ID, 10), p.Name, p.Email, p.Role, p.Department, p.Position})
		}

		cmd.Println(table.Title("staff"))
		cmd.Println(table.Render([]string{"ID", "NAME", "EMAIL", "ROLE", "DEPARTMENT", "POSITION"}, rows))
		return nil
	},
}

var staffEnrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "enroll a staff member",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		form := &core.StaffForm{}
		form.FullName, _ = flags.GetString("name")
		form.Email, _ = flags.GetString("email")
		form.Phone, _ = flags.GetString("phone")
		form.Role, _ = flags.GetString("role")
		form.Department, _ = flags.GetString("department")
		form.Position, _ = flags.GetString("position")
		form.Password, _ = flags.GetString("password")
		form.IsActive, _ = flags.GetBool("active")

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		p, err := provideDirectoryStore(provideClient(ctx, sessions)).Enroll(ctx, form)
		if err != nil {
			return err
		}

		cmd.Println("enrolled", p.Name, p.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(staffCmd)
	staffCmd.AddCommand(staffEnrollCmd)

	flags := staffEnrollCmd.Flags()
	flags.String("name", "", "full name")
	flags.String("email", "", "email")
	flags.String("phone", "", "phone")
	flags.String("role", "", "role")
	flags.String("department", "", "department")
	flags.String("position", "", "position")
	flags.String("password", "", "initial password")
	flags.Bool("active", true, "active on creation")
}
