package cmd

import (
	"vanguard/core"
	"vanguard/worker"
	"vanguard/worker/messenger"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "keep the support thread in sync in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		sessions := provideSessionStore()
		session, err := provideSession(ctx, sessions)
		if err != nil {
			return err
		}

		messages := provideMessageStore(provideClient(ctx, sessions))
		poller := messenger.New(messages, session.User.ID, cfg.Chat.CounterpartID, cfg.Chat.IntervalDuration())

		seen := 0
		poller.OnChange(func(thread []*core.Message) {
			if len(thread) > seen {
				log.Infof("thread has %d messages", len(thread))
			}
			seen = len(thread)
		})

		workers := []worker.IJob{poller}
		for _, w := range workers {
			if err := w.Start(); err != nil {
				return err
			}
		}

		<-ctx.Done()

		for _, w := range workers {
			_ = w.Stop()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
