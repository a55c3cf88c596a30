package cmd

import (
	"vanguard/core"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "log in with --email and --password, or store a token issued elsewhere",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		sessions := provideSessionStore()

		if email, _ := flags.GetString("email"); email != "" && !flags.Changed("token") {
			password, _ := flags.GetString("password")
			s, err := provideAuthService(provideClient(ctx, sessions)).Login(ctx, email, password)
			if err != nil {
				return err
			}

			if err := sessions.Set(ctx, s); err != nil {
				return err
			}

			cmd.Println("logged in as", s.User.ID)
			return nil
		}

		s := &core.Session{}
		s.Token, _ = flags.GetString("token")
		s.User.ID, _ = flags.GetInt64("user-id")
		s.User.Name, _ = flags.GetString("name")
		s.User.Email, _ = flags.GetString("email")
		s.User.Role, _ = flags.GetString("role")

		if s.Token == "" || s.User.ID <= 0 {
			return &core.Error{Code: core.ErrInvalidForm, Op: "login", Msg: "--token and --user-id are required"}
		}

		if err := sessions.Set(ctx, s); err != nil {
			return err
		}

		cmd.Println("logged in as", s.User.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return provideSessionStore().Clear(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := provideSession(cmd.Context(), provideSessionStore())
		if err != nil {
			return err
		}

		cmd.Printf("id: %d\nname: %s\nemail: %s\nrole: %s\n", s.User.ID, s.User.Name, s.User.Email, s.User.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("password", "", "admin password")
	loginCmd.Flags().String("token", "", "session token")
	loginCmd.Flags().Int64("user-id", 0, "user id")
	loginCmd.Flags().String("name", "", "display name")
	loginCmd.Flags().String("email", "", "email")
	loginCmd.Flags().String("role", "", "role, admin manages every listing")
}
