package cmd

import (
	"strconv"

	"vanguard/core"
	"vanguard/pkg/table"

	"github.com/spf13/cobra"
)

var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "list notices, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		notices, err := provideNoticeStore(provideClient(ctx, provideSessionStore())).List(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(notices))
		for _, n := range notices {
			created := ""
			if !n.CreatedAt.IsZero() {
				created = n.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			rows = append(rows, []string{strconv.FormatInt(n.ID, 10), n.Title, n.Content, created})
		}

		cmd.Println(table.Title("notices"))
		cmd.Println(table.Render([]string{"ID", "TITLE", "CONTENT", "CREATED"}, rows))
		return nil
	},
}

var noticePostCmd = &cobra.Command{
	Use:   "post",
	Short: "post a notice to every investor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		form := &core.NoticeForm{}
		form.Title, _ = cmd.Flags().GetString("title")
		form.Content, _ = cmd.Flags().GetString("content")

		sessions := provideSessionStore()
		if _, err := provideSession(ctx, sessions); err != nil {
			return err
		}

		n, err := provideNoticeStore(provideClient(ctx, sessions)).Post(ctx, form)
		if err != nil {
			return err
		}

		cmd.Println("notice posted", n.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noticesCmd)
	noticesCmd.AddCommand(noticePostCmd)

	noticePostCmd.Flags().String("title", "", "notice title")
	noticePostCmd.Flags().String("content", "", "notice body")
}
