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

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "System management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show server status",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
			{
				Name:   "sweep",
				Usage:  "Remove expired sessions now",
				Action: systemSweep,
			},
		},
	}
}

func systemStatus(c *cli.Context) error {
	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/admin/v1/status")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Version       string `json:"version"`
		Commit        string `json:"commit"`
		GoVersion     string `json:"go_version"`
		SessionCount  int    `json:"session_count"`
		UpstreamReady bool   `json:"upstream_ready"`
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
		fmt.Printf("Server Status\n")
		fmt.Printf("=============\n\n")
		fmt.Printf("Version:   %s (%s)\n", result.Version, result.Commit)
		fmt.Printf("Go:        %s\n", result.GoVersion)
		fmt.Printf("Sessions:  %d\n", result.SessionCount)
		if result.UpstreamReady {
			fmt.Printf("Upstream:  configured\n")
		} else {
			fmt.Printf("Upstream:  not configured\n")
		}
		return nil
	}
}

func systemHealth(c *cli.Context) error {
	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/health")
	if err != nil {
		PrintError("health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	if result.Status == "healthy" {
		fmt.Printf("✓ Server is healthy\n")
		fmt.Printf("  Target: %s\n", client.BaseURL())
	} else {
		fmt.Printf("✗ Server is unhealthy: %s\n", result.Status)
	}
	return nil
}

func systemSweep(c *cli.Context) error {
	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.Post(ctx, "/admin/v1/sweep", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Removed   int `json:"removed"`
		Remaining int `json:"remaining"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	fmt.Printf("Removed %d expired sessions, %d remaining\n", result.Removed, result.Remaining)
	return nil
}
