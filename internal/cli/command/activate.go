package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/transgate/transgate-go/internal/cli/connection"
	"github.com/transgate/transgate-go/internal/cli/output"
)

// ActivateCommand returns the activate command.
func ActivateCommand() *cli.Command {
	return &cli.Command{
		Name:      "activate",
		Usage:     "Activate a token and register its session",
		ArgsUsage: "TOKEN",
		Action:    activate,
	}
}

func activate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one TOKEN argument")
	}

	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Post(ctx, "/activate", map[string]string{
		"token": c.Args().First(),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Identifier string `json:"identifier"`
		Plan       string `json:"plan"`
		ExpiresAt  int64  `json:"expires_at"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON, output.FormatYAML:
		formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
		return formatter.Format(os.Stdout, result)
	default:
		fmt.Printf("Session activated\n")
		fmt.Printf("  Identifier: %s\n", result.Identifier)
		if result.Plan != "" {
			fmt.Printf("  Plan:       %s\n", result.Plan)
		}
		fmt.Printf("  Expires:    %s\n", time.UnixMilli(result.ExpiresAt).UTC().Format(time.RFC3339))
		return nil
	}
}
