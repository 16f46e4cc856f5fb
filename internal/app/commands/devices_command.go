package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"camera-gateway/internal/app"
)

// GetDevicesCommand возвращает команду перечисления устройств захвата
func GetDevicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List capture devices and their supported modes",
		Description: `Probe the configured device source (static list or v4l2) and
print every device with its supported (resolution, framerate) pairs.`,
		Action: func(c *cli.Context) error {
			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			catalog, err := app.BuildCatalog(c.Context, ctx.Config, ctx.Logger)
			if err != nil {
				return err
			}

			devices := catalog.Devices()
			if len(devices) == 0 {
				fmt.Println("No capture devices found")
				return nil
			}

			for _, device := range devices {
				fmt.Println(device)
				for _, option := range catalog.ListOptions(device) {
					fmt.Printf("  %s @ %d fps\n", option.Resolution, option.Framerate)
				}
			}

			return nil
		},
	}
}
