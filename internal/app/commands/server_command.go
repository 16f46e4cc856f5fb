package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"camera-gateway/internal/app"
)

// GetServerCommand возвращает команду для запуска сервера
func GetServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Start the camera gateway server",
		Description: `Start the HTTP server that gates the camera stream behind a
password check and exposes the capture configuration API.

Examples:
  camera-gateway server
  camera-gateway server --port 8443 --config /etc/camera-gateway/config.yaml`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Override the configured server port",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Override the configured server host",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			// Флаги командной строки перекрывают файл конфигурации
			if c.Int("port") != 0 {
				ctx.Config.Port = c.Int("port")
			}
			if c.String("host") != "" {
				ctx.Config.Host = c.String("host")
			}

			ctx.Logger.Info("Starting camera gateway",
				zap.String("address", ctx.Config.Address()),
				zap.Duration("session_ttl", ctx.Config.Session.TTL))

			// Graceful shutdown по сигналу
			runCtx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt,
				syscall.SIGTERM,
				syscall.SIGINT,
			)
			defer stop()

			application, err := app.NewApplication(runCtx, ctx.Config, ctx.Logger)
			if err != nil {
				return err
			}

			return application.Run(runCtx)
		},
	}
}
