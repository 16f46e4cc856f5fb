package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"camera-gateway/internal/app/commands"
)

func main() {
	cliApp := &cli.App{
		Name:  "camera-gateway",
		Usage: "Password-gated access to a live camera stream and its capture configuration",
		Flags: commands.GlobalFlags(),
		// Без команды запускаем сервер
		DefaultCommand: "server",
		Commands:       commands.GetCommands(),
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
