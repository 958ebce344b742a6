package refdata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/options"
)

func ColorOption(c Color) options.Option {
	return options.Option{ID: c.ColorID, Value: c.ColorValue, Label: c.ColorName}
}

func DateFormatOption(d DateFormat) options.Option {
	return options.Option{ID: d.DateFormatID, Value: d.FormatName, Label: d.FormatName, Detail: d.FormatDescription}
}

func FramingStyleOption(f FramingStyle) options.Option {
	return options.Option{ID: f.FramingStyleID, Value: f.FramingStyleName, Label: f.FramingStyleName, Detail: f.FramingDescription}
}

func LetteringStyleOption(l LetteringStyle) options.Option {
	return options.Option{ID: l.LetteringStyleID, Value: l.LetteringStyleName, Label: l.LetteringStyleName, Detail: l.LetteringDescription}
}

func PostalFacilityOption(p PostalFacility) options.Option {
	return options.Option{ID: p.PostalFacilityID, Value: p.ReferenceCode, Label: p.CurrentName, Detail: p.CurrentType}
}

func PostmarkShapeOption(s PostmarkShape) options.Option {
	return options.Option{ID: s.PostmarkShapeID, Value: s.ShapeName, Label: s.ShapeName, Detail: s.ShapeDescription}
}

// Options fetches an option resource and maps it to options. The API order
// is kept.
func (c *Client) Options(ctx context.Context, r Resource) ([]options.Option, error) {
	switch r {
	case Colors:
		return fetchMapped(ctx, c, r, ColorOption)
	case DateFormats:
		return fetchMapped(ctx, c, r, DateFormatOption)
	case FramingStyles:
		return fetchMapped(ctx, c, r, FramingStyleOption)
	case LetteringStyles:
		return fetchMapped(ctx, c, r, LetteringStyleOption)
	case PostalFacilities:
		return fetchMapped(ctx, c, r, PostalFacilityOption)
	case PostmarkShapes:
		return fetchMapped(ctx, c, r, PostmarkShapeOption)
	default:
		return nil, fmt.Errorf("%s is not an option resource", r)
	}
}

// OptionsProvider exposes an option resource as the primary provider of a
// fallback chain.
func (c *Client) OptionsProvider(r Resource) fallback.Provider[options.Option] {
	return fallback.Func("api:"+string(r), func(ctx context.Context) ([]options.Option, error) {
		return c.Options(ctx, r)
	})
}

func fetchMapped[T any](ctx context.Context, c *Client, r Resource, fn func(T) options.Option) ([]options.Option, error) {
	items, err := Fetch[T](ctx, c, r)
	if err != nil {
		return nil, err
	}
	out := make([]options.Option, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out, nil
}
