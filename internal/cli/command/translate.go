package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/transgate/transgate-go/internal/cli/connection"
	"github.com/transgate/transgate-go/internal/cli/output"
)

// TranslateCommand returns the translate command.
func TranslateCommand() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Aliases:   []string{"tr"},
		Usage:     "Translate text through the gateway",
		ArgsUsage: "TEXT...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "identifier",
				Aliases:  []string{"i"},
				Usage:    "Session identifier",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "Source language (detected when omitted)",
			},
			&cli.StringFlag{
				Name:     "to",
				Aliases:  []string{"t"},
				Usage:    "Target language",
				Required: true,
			},
		},
		Action: translate,
	}
}

func translate(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no text given")
	}
	text := strings.Join(c.Args().Slice(), " ")

	client := Client(c)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Post(ctx, "/translate", map[string]string{
		"identifier":  c.String("identifier"),
		"text":        text,
		"source_lang": c.String("from"),
		"target_lang": c.String("to"),
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		TranslatedText string `json:"translated_text"`
		DetectedLang   string `json:"detected_lang"`
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
		fmt.Println(result.TranslatedText)
		return nil
	}
}
