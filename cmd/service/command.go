package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/safe"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "chat service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
	startCronJobs(app)
	serve(app)
	return nil
}

// startCronJobs 启动后台定时任务，目前只有过期会话清理。
func startCronJobs(app *core.Core) {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		safe.Run(func() {
			deleted, err := app.Store().SessionStore().DeleteExpired(context.Background(), time.Now().Unix())
			if err != nil {
				slog.Error("failed to sweep expired sessions", slog.String("error", err.Error()))
				return
			}
			if deleted > 0 {
				slog.Info("expired sessions removed", slog.Int64("count", deleted))
			}
		})
	})
	c.Start()
}
