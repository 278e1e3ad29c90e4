package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/cardstack/pkg/cli/config"
	"github.com/m-mizutani/cardstack/pkg/domain/model"
	"github.com/m-mizutani/cardstack/pkg/infra/memory"
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/cardstack/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// cmdRender composes a single card from a JSON record and prints it. It is
// the offline counterpart of the HTTP API, mainly for debugging payloads.
func cmdRender() *cli.Command {
	var (
		themeCfg    config.Theme
		input       string
		kind        string
		viewMode    string
		repoIsKnown bool
	)

	flags := append(themeCfg.Flags(),
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Input JSON file ('-' for stdin)",
			Value:       "-",
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "kind",
			Usage:       "Record kind (event, notification)",
			Value:       "event",
			Destination: &kind,
		},
		&cli.StringFlag{
			Name:        "view-mode",
			Usage:       "View mode (compact, expanded)",
			Value:       string(model.ViewModeExpanded),
			Destination: &viewMode,
		},
		&cli.BoolFlag{
			Name:        "repo-is-known",
			Usage:       "Omit repository context already shown by the surrounding column",
			Destination: &repoIsKnown,
		},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Compose a card from a JSON record and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}

			palette, err := themeCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load theme")
			}

			readState, err := memory.NewReadStateStore(memory.DefaultSize)
			if err != nil {
				return goerr.Wrap(err, "failed to create read state store")
			}

			cardUC := usecase.NewCard(readState, theme.NewProvider(palette))

			opts := model.ComposeOptions{
				ViewMode:    model.ViewMode(viewMode),
				RepoIsKnown: repoIsKnown,
			}

			var card *model.Card
			switch kind {
			case "event":
				var event model.Event
				if err := json.Unmarshal(data, &event); err != nil {
					return goerr.Wrap(err, "failed to parse event JSON")
				}
				card, err = cardUC.ComposeEventCard(ctx, &event, opts)

			case "notification":
				var notification model.Notification
				if err := json.Unmarshal(data, &notification); err != nil {
					return goerr.Wrap(err, "failed to parse notification JSON")
				}
				card, err = cardUC.ComposeNotificationCard(ctx, &notification, opts)

			default:
				return goerr.New("unknown record kind", goerr.V("kind", kind))
			}
			if err != nil {
				return goerr.Wrap(err, "failed to compose card")
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(card); err != nil {
				return goerr.Wrap(err, "failed to encode card")
			}
			return nil
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return data, nil
}
