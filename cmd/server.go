package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vanguard/handler"
	"vanguard/handler/hc"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "serve the unified listings over http",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		sessions := provideSessionStore()
		client := provideClient(ctx, sessions)
		listings := provideListingStore(client)
		directory := provideDirectoryStore(client)
		notices := provideNoticeStore(client)

		mux := chi.NewMux()
		mux.Use(middleware.RequestID)
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, listings))
		}

		{
			//restful api
			svr := handler.New(provideConfig(), listings, directory, notices, sessions)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf("%s:%d", host, port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().String("host", "127.0.0.1", "listen host")
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
