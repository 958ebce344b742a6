package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
)

// FilterOptions are the choices offered by the catalog search form.
type FilterOptions struct {
	Colors       []options.Option `json:"colors"`
	ColorsSource string           `json:"colors_source,omitempty"`
	States       []options.Option `json:"states"`
	Types        []options.Option `json:"types"`
	Valuations   []options.Option `json:"valuations"`
}

// CatalogService serves approved records and reference data. Reference
// resources are read from their REST service when one is configured and
// derived from the catalog tables otherwise.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ref         *refdata.Client
	log         logging.Logger
	pageSize    int
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, ref *refdata.Client, log logging.Logger) *CatalogService {
	if log == nil {
		log = logging.Discard()
	}
	if ref == nil {
		ref = refdata.NewClient(nil, 0, log)
	}
	return &CatalogService{
		db:          db,
		repomanager: m,
		ref:         ref,
		log:         log,
		pageSize:    filter.DefaultPageSize,
	}
}

// List returns every catalog record, oldest first.
func (s *CatalogService) List(ctx context.Context) ([]catalog.Record, error) {
	recs, err := s.repomanager.CatalogRecords(s.db).SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return recs, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*catalog.Record, error) {
	return s.repomanager.CatalogRecords(s.db).GetByID(ctx, id)
}

// Search filters the catalog with st and returns the requested page.
func (s *CatalogService) Search(ctx context.Context, st filter.State, page int) (filter.Page[catalog.Entry], error) {
	recs, err := s.List(ctx)
	if err != nil {
		return filter.Page[catalog.Entry]{}, err
	}
	matched := st.Filter(catalog.FromRecords(recs))
	return filter.Paginate(matched, s.pageSize, page), nil
}

// FilterOptions collects the distinct states, types and valuations of the
// catalog, and the color list from the colors chain. A failed color chain
// yields an empty color list rather than an error.
func (s *CatalogService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	colors := s.Colors(ctx)
	return &FilterOptions{
		Colors:       colors.Items,
		ColorsSource: colors.Source,
		States:       options.Distinct(func(r catalog.Record) string { return r.State }, recs),
		Types:        options.Distinct(func(r catalog.Record) string { return r.Type }, recs),
		Valuations:   options.Distinct(func(r catalog.Record) string { return r.Valuation }, recs),
	}, nil
}

// Colors returns color options from the colors API, or the distinct colors
// of records and submissions.
func (s *CatalogService) Colors(ctx context.Context) fallback.Result[options.Option] {
	return s.ReferenceOptions(ctx, refdata.Colors)
}

// ReferenceOptions fetches an option resource through its fallback chain.
func (s *CatalogService) ReferenceOptions(ctx context.Context, r refdata.Resource) fallback.Result[options.Option] {
	chain := fallback.NewChain(string(r), s.log,
		s.ref.OptionsProvider(r),
		s.storeOptions(r),
	)
	return chain.Fetch(ctx)
}

// ReferenceRaw fetches any resource as raw JSON items. There is no store
// fallback for raw items, so an unconfigured resource is an empty success.
func (s *CatalogService) ReferenceRaw(ctx context.Context, r refdata.Resource) fallback.Result[json.RawMessage] {
	chain := fallback.NewChain(string(r), s.log,
		fallback.Func("api:"+string(r), func(ctx context.Context) ([]json.RawMessage, error) {
			return s.ref.Raw(ctx, r)
		}),
		fallback.Func("store:"+string(r), func(context.Context) ([]json.RawMessage, error) {
			return nil, fallback.ErrNotApplicable
		}),
	)
	return chain.Fetch(ctx)
}

func (s *CatalogService) storeOptions(r refdata.Resource) fallback.Provider[options.Option] {
	return fallback.Func("store:"+string(r), func(ctx context.Context) ([]options.Option, error) {
		switch r {
		case refdata.Colors:
			return s.distinctColumn(ctx, models.ColumnColor)
		case refdata.PostmarkShapes:
			return s.distinctColumn(ctx, models.ColumnType)
		case refdata.PostalFacilities:
			return s.places(ctx)
		default:
			return nil, fallback.ErrNotApplicable
		}
	})
}

func (s *CatalogService) distinctColumn(ctx context.Context, col models.Column) ([]options.Option, error) {
	recs, err := s.repomanager.CatalogRecords(s.db).Column(ctx, col)
	if err != nil {
		return nil, err
	}
	subs, err := s.repomanager.Submissions(s.db).Column(ctx, col)
	if err != nil {
		return nil, err
	}
	return options.Strings(recs, subs), nil
}

func (s *CatalogService) places(ctx context.Context) ([]options.Option, error) {
	recs, err := s.repomanager.CatalogRecords(s.db).Places(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.repomanager.Submissions(s.db).Places(ctx)
	if err != nil {
		return nil, err
	}
	return options.FromPairs(recs, subs), nil
}
