package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/transgate/transgate-go/internal/cli/connection"
	"github.com/transgate/transgate-go/internal/cli/output"
	"github.com/transgate/transgate-go/pkg/token"
)

// TokenCommand returns the token subcommand group.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:    "token",
		Aliases: []string{"tok"},
		Usage:   "Mint and verify activation tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "mint",
				Usage: "Mint a token via the server admin API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "identifier",
						Aliases:  []string{"i"},
						Usage:    "Subject the token is minted for",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "plan",
						Aliases: []string{"p"},
						Usage:   "Subscription plan",
					},
					&cli.DurationFlag{
						Name:    "ttl",
						Aliases: []string{"t"},
						Usage:   "Token validity (e.g., 24h, 30m); server default when omitted",
					},
				},
				Action: tokenMint,
			},
			{
				Name:      "verify",
				Usage:     "Verify a token locally against a shared secret",
				ArgsUsage: "TOKEN",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "secret",
						Usage:    "Shared signing secret",
						EnvVars:  []string{"TRANSGATE_SECRET"},
						Required: true,
					},
				},
				Action: tokenVerify,
			},
			{
				Name:      "fingerprint",
				Aliases:   []string{"fp"},
				Usage:     "Print the short fingerprint of a token",
				ArgsUsage: "TOKEN",
				Action:    tokenFingerprint,
			},
		},
	}
}

func tokenMint(c *cli.Context) error {
	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body := map[string]any{
		"identifier": c.String("identifier"),
		"plan":       c.String("plan"),
	}
	if ttl := c.Duration("ttl"); ttl > 0 {
		body["ttl_seconds"] = int64(ttl.Seconds())
	}

	resp, err := client.Post(ctx, "/admin/v1/tokens", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Token     string `json:"token"`
		Nonce     string `json:"nonce"`
		ExpiresAt int64  `json:"expires_at"`
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
		// The token itself goes on its own line for easy piping.
		fmt.Println(result.Token)
		fmt.Fprintf(os.Stderr, "expires: %s\n", time.UnixMilli(result.ExpiresAt).UTC().Format(time.RFC3339))
		return nil
	}
}

func tokenVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one TOKEN argument")
	}

	result := token.Verify(c.Args().First(), []byte(c.String("secret")))
	if !result.Valid {
		return fmt.Errorf("token rejected: %s", result.Reason)
	}

	fmt.Printf("Token valid\n")
	fmt.Printf("  Identifier: %s\n", result.Claims.Identifier)
	if result.Claims.Plan != "" {
		fmt.Printf("  Plan:       %s\n", result.Claims.Plan)
	}
	fmt.Printf("  Expires:    %s\n", result.Claims.Expiry.UTC().Format(time.RFC3339))
	fmt.Printf("  Nonce:      %s\n", result.Claims.Nonce)
	return nil
}

func tokenFingerprint(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one TOKEN argument")
	}

	fmt.Println(token.Fingerprint(c.Args().First()))
	return nil
}
