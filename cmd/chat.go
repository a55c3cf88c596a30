package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"vanguard/core"
	"vanguard/worker/messenger"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "support chat, every input line is sent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sessions := provideSessionStore()
		session, err := provideSession(ctx, sessions)
		if err != nil {
			return err
		}

		counterpart := cfg.Chat.CounterpartID
		if cmd.Flags().Changed("to") {
			counterpart, _ = cmd.Flags().GetInt64("to")
		}

		messages := provideMessageStore(provideClient(ctx, sessions))
		poller := messenger.New(messages, session.User.ID, counterpart, cfg.Chat.IntervalDuration())

		var mux sync.Mutex
		printed := map[string]bool{}
		poller.OnChange(func(thread []*core.Message) {
			mux.Lock()
			defer mux.Unlock()

			for _, m := range thread {
				if m.IsTemp() || printed[m.ID] {
					continue
				}

				printed[m.ID] = true
				cmd.Println(formatMessage(m, session.User.ID))
			}
		})

		if err := poller.Poll(ctx); err != nil {
			return err
		}

		_ = poller.Start()
		defer poller.Stop()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			if line == ":q" {
				break
			}

			if _, err := poller.Send(ctx, line); err != nil {
				cmd.PrintErrln("send failed:", errorMessage(err))
			}
		}

		return scanner.Err()
	},
}

func formatMessage(m *core.Message, self int64) string {
	from := "support"
	if m.FromUserID == self {
		from = "me"
	}

	return fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Local().Format("15:04"), from, m.Body)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Int64("to", 0, "counterpart user id, default chat.counterpart_id")
}
