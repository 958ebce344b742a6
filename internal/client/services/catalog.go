package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

// CatalogService reads the public catalog and the option lists of the
// search and contribute forms.
type CatalogService interface {
	Entries(ctx context.Context) ([]catalog.Entry, error)
	Record(ctx context.Context, id string) (*catalog.Record, error)
	FilterOptions(ctx context.Context) (*client.FilterOptions, error)
	Options(ctx context.Context, r refdata.Resource) fallback.Result[options.Option]
}

type catalogService struct {
	api client.Client
	ref *refdata.Client
	log logging.Logger
}

// NewCatalogService constructs a CatalogService. ref reads reference
// resources directly when the CLI is configured with their URLs; it may be
// nil.
func NewCatalogService(api client.Client, ref *refdata.Client, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Discard()
	}
	if ref == nil {
		ref = refdata.NewClient(nil, 0, log)
	}
	return &catalogService{api: api, ref: ref, log: log}
}

func (s *catalogService) Entries(ctx context.Context) ([]catalog.Entry, error) {
	recs, err := s.api.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return catalog.FromRecords(recs), nil
}

func (s *catalogService) Record(ctx context.Context, id string) (*catalog.Record, error) {
	return s.api.Record(ctx, id)
}

func (s *catalogService) FilterOptions(ctx context.Context) (*client.FilterOptions, error) {
	return s.api.FilterOptions(ctx)
}

// Options fetches an option resource: the reference API configured in the
// CLI first, then the catalog server, which has its own fallback to the
// catalog store.
func (s *catalogService) Options(ctx context.Context, r refdata.Resource) fallback.Result[options.Option] {
	chain := fallback.NewChain(string(r), s.log,
		s.ref.OptionsProvider(r),
		fallback.Func("server:"+string(r), func(ctx context.Context) ([]options.Option, error) {
			res, err := s.api.Reference(ctx, string(r))
			if err != nil {
				return nil, err
			}
			if res.State == fallback.Failed.String() {
				return nil, errors.New("server could not load " + string(r))
			}
			return res.Items, nil
		}),
	)
	return chain.Fetch(ctx)
}
