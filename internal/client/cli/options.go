package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

// Filters prints the choices of the search form.
func (a *App) Filters(ctx context.Context) error {
	fo, err := a.catalogService.FilterOptions(ctx)
	if err != nil {
		return err
	}
	a.printOptions("Colors", fo.Colors)
	a.printOptions("States", fo.States)
	a.printOptions("Types", fo.Types)
	a.printOptions("Valuations", fo.Valuations)
	return nil
}

// Options prints a reference resource used by the forms, such as colors or
// postmark shapes.
func (a *App) Options(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: options <resource>")
	}
	r, ok := refdata.ParseResource(args[0])
	if !ok || !r.IsOption() {
		names := make([]string, 0)
		for _, r := range refdata.Resources {
			if r.IsOption() {
				names = append(names, string(r))
			}
		}
		return errors.New("options are available for: " + strings.Join(names, ", "))
	}

	res := a.catalogService.Options(ctx, r)
	if res.State == fallback.Failed {
		a.printf("Could not load %s\n", r)
		return res.Err
	}
	a.printOptions(string(r), res.Items)
	if res.Source != "" {
		a.printf("(source: %s)\n", res.Source)
	}
	return nil
}

func (a *App) printOptions(title string, opts []options.Option) {
	if len(opts) == 0 {
		a.printf("%s: none\n", title)
		return
	}
	a.printf("%s: %s\n", title, strings.Join(options.Labels(opts), ", "))
}
