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

// SessionCommand returns the session subcommand group.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Aliases: []string{"sess"},
		Usage:   "Manage sessions",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get session details",
				ArgsUsage: "IDENTIFIER",
				Action:    sessionGet,
			},
			{
				Name:      "revoke",
				Aliases:   []string{"deactivate"},
				Usage:     "Deactivate a session",
				ArgsUsage: "IDENTIFIER",
				Action:    sessionRevoke,
			},
		},
	}
}

// sessionView shapes a session for the table formatter.
type sessionView struct {
	Identifier  string    `json:"identifier"`
	Plan        string    `json:"plan"`
	ActivatedAt time.Time `json:"activated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Expired     bool      `json:"expired"`
}

func sessionGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one IDENTIFIER argument")
	}
	identifier := c.Args().First()

	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/sessions/"+identifier)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Identifier  string `json:"identifier"`
		Plan        string `json:"plan"`
		ActivatedAt int64  `json:"activated_at"`
		ExpiresAt   int64  `json:"expires_at"`
		Expired     bool   `json:"expired"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	view := sessionView{
		Identifier:  result.Identifier,
		Plan:        result.Plan,
		ActivatedAt: time.UnixMilli(result.ActivatedAt).UTC(),
		ExpiresAt:   time.UnixMilli(result.ExpiresAt).UTC(),
		Expired:     result.Expired,
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
	return formatter.Format(os.Stdout, view)
}

func sessionRevoke(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one IDENTIFIER argument")
	}
	identifier := c.Args().First()

	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Delete(ctx, "/sessions/"+identifier)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if err := connection.ParseResponse(resp, nil); err != nil {
		return err
	}

	fmt.Printf("Session %s deactivated\n", identifier)
	return nil
}
