package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"camera-gateway/internal/auth"
)

// GetSetPasswordCommand возвращает команду установки мастер-пароля
func GetSetPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "set-password",
		Usage: "Hash a new master password and write it to the config file",
		Description: `Hash the master password with argon2id and store the encoded
hash in the configuration file. The plaintext password is never stored.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "password",
				Usage: "New master password (read from stdin when omitted)",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			password := c.String("password")
			if password == "" {
				password, err = readPassword()
				if err != nil {
					return err
				}
			}

			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			ctx.Config.Auth.PasswordHash = hash
			if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			ctx.Logger.Info("Password hash updated",
				zap.String("config", ctx.ConfigPath))
			fmt.Printf("Password hash written to %s\n", ctx.ConfigPath)

			return nil
		},
	}
}

// readPassword читает пароль из stdin
func readPassword() (string, error) {
	fmt.Print("New password: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
