package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FetchClient fetches every raw listing a storefront publishes
type FetchClient interface {
	// FetchProducts pages through the storefront's product feed until
	// it is exhausted
	FetchProducts(ctx context.Context, website string) ([]RawProduct, error)
}

// SnapshotStore persists the raw and parsed snapshots of a run so later
// stages can resume without refetching.
type SnapshotStore interface {
	// SaveJSON writes a snapshot file for a shop
	SaveJSON(shopName, fileName string, v any) error

	// LoadJSON reads a snapshot file for a shop
	LoadJSON(shopName, fileName string, v any) error
}

// RunOptions controls which stages of a run execute
type RunOptions struct {
	// SkipFetch reuses the raw snapshot on disk instead of fetching
	SkipFetch bool

	// SkipParse reuses the parsed snapshot on disk instead of parsing
	SkipParse bool
}

// Service drives the ingestion pipeline: fetch a shop's listings, parse
// them into the canonical shape and reconcile them into the catalog in
// one transaction per run.
type Service struct {
	registry  *Registry
	fetcher   FetchClient
	snapshots SnapshotStore
	scope     TransactionScope
	runs      catalog.IngestionRunRepository
	log       *zap.Logger
}

// NewService creates the ingestion service
func NewService(registry *Registry, fetcher FetchClient, snapshots SnapshotStore,
	scope TransactionScope, runs catalog.IngestionRunRepository, log *zap.Logger) *Service {

	return &Service{
		registry:  registry,
		fetcher:   fetcher,
		snapshots: snapshots,
		scope:     scope,
		runs:      runs,
		log:       log.Named("ingest"),
	}
}

// Fetch downloads a shop's full product feed and writes the raw
// snapshot. It returns the number of listings fetched.
func (s *Service) Fetch(ctx context.Context, shopName string) (int, error) {
	pipe, err := s.registry.Pipeline(shopName)
	if err != nil {
		return 0, err
	}

	raws, err := s.fetcher.FetchProducts(ctx, pipe.Source.Website)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch products for %s: %w", shopName, err)
	}

	if err := s.snapshots.SaveJSON(shopName, RawSnapshotFile, raws); err != nil {
		return 0, err
	}

	s.log.Info("Fetched products",
		zap.String("shop", shopName),
		zap.Int("count", len(raws)),
	)
	return len(raws), nil
}

// Parse normalizes the raw snapshot of a shop and writes the parsed
// snapshot. It returns the parsed listings and the original ids of
// listings that could not be parsed.
func (s *Service) Parse(_ context.Context, shopName string) ([]ParsedProduct, []string, error) {
	pipe, err := s.registry.Pipeline(shopName)
	if err != nil {
		return nil, nil, err
	}

	var raws []RawProduct
	if err := s.snapshots.LoadJSON(shopName, RawSnapshotFile, &raws); err != nil {
		return nil, nil, err
	}

	parsed, skipped := ParseProducts(pipe.Parser, raws, s.log)

	if err := s.snapshots.SaveJSON(shopName, ParsedSnapshotFile, parsed); err != nil {
		return nil, nil, err
	}

	s.log.Info("Parsed products",
		zap.String("shop", shopName),
		zap.Int("parsed", len(parsed)),
		zap.Int("skipped", len(skipped)),
	)
	return parsed, skipped, nil
}

// Integrate reconciles parsed listings into the catalog within a single
// transaction. Any failure rolls every write of the run back. The run
// record itself is written after the transaction settles, so a rolled
// back run still leaves a trace.
func (s *Service) Integrate(ctx context.Context, shopName string, parsed []ParsedProduct, skippedIDs []string) (*catalog.IngestionRun, error) {
	pipe, err := s.registry.Pipeline(shopName)
	if err != nil {
		return nil, err
	}

	run, err := catalog.NewIngestionRun(shopName)
	if err != nil {
		return nil, err
	}

	created := catalog.Tally{}
	updated := catalog.Tally{}

	txErr := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		shop, err := s.ensureShop(ctx, repos.Shops(), pipe.Source)
		if err != nil {
			return err
		}

		seen := make([]int64, 0, len(parsed))
		for i := range parsed {
			product := &parsed[i]
			if err := s.integrateProduct(ctx, pipe.Converter, repos, shop, product, created, updated); err != nil {
				return fmt.Errorf("product %d: %w", product.ProductID, err)
			}
			seen = append(seen, product.ProductID)
		}

		removed, err := repos.Products().SoftDeleteAbsent(ctx, shop.ID, seen)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.log.Info("Soft-deleted absent products",
				zap.String("shop", shopName),
				zap.Int64("count", removed),
			)
		}
		return nil
	})

	if txErr != nil {
		run.Fail(txErr)
		s.log.Error("Ingestion run rolled back",
			zap.String("shop", shopName),
			zap.Error(txErr),
		)
	} else {
		run.Complete(created, updated, skippedIDs)
		s.log.Info("Ingestion run committed",
			zap.String("shop", shopName),
			zap.Any("created", created),
			zap.Any("updated", updated),
			zap.Int("skipped", len(skippedIDs)),
		)
	}

	if err := s.runs.Save(ctx, run); err != nil {
		s.log.Error("Failed to save ingestion run record",
			zap.String("shop", shopName),
			zap.Error(err),
		)
	}

	return run, txErr
}

// Run executes the full pipeline for one shop
func (s *Service) Run(ctx context.Context, shopName string, opts RunOptions) (*catalog.IngestionRun, error) {
	if !opts.SkipFetch {
		if _, err := s.Fetch(ctx, shopName); err != nil {
			return nil, err
		}
	}

	var parsed []ParsedProduct
	var skipped []string
	if opts.SkipParse {
		if err := s.snapshots.LoadJSON(shopName, ParsedSnapshotFile, &parsed); err != nil {
			return nil, err
		}
	} else {
		var err error
		parsed, skipped, err = s.Parse(ctx, shopName)
		if err != nil {
			return nil, err
		}
	}

	return s.Integrate(ctx, shopName, parsed, skipped)
}

// ensureShop finds the shop record, creating it on first encounter
func (s *Service) ensureShop(ctx context.Context, shops catalog.ShopRepository, source Source) (*catalog.Shop, error) {
	shop, err := shops.FindByName(ctx, source.Name)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shop, err = catalog.NewShop(source.Name, source.Website)
	if err != nil {
		return nil, err
	}
	if err := shops.Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// integrateProduct reconciles one parsed listing: upsert the product,
// replace its categories and attribute links, upsert its variants and
// recompute their sizings.
func (s *Service) integrateProduct(ctx context.Context, conv Converter, repos TransactionalRepositories,
	shop *catalog.Shop, parsed *ParsedProduct, created, updated catalog.Tally) error {

	converted, err := conv.ConvertProduct(parsed, shop.ID)
	if err != nil {
		return err
	}

	product, err := repos.Products().FindByOriginalID(ctx, shop.ID, parsed.ProductID)
	switch {
	case err == nil:
		if err := product.ApplyListing(converted.Brand, converted.Title, converted.Description); err != nil {
			return err
		}
		product.Restore()
		updated.Add("products", 1)
	case errors.Is(err, shared.ErrNotFound):
		product = converted
		created.Add("products", 1)
	default:
		return err
	}
	if err := repos.Products().Save(ctx, product); err != nil {
		return err
	}

	categories, err := conv.ConvertCategories(ctx, parsed, repos.Categories())
	if err != nil {
		return err
	}
	if err := repos.Products().ReplaceCategories(ctx, product, categories); err != nil {
		return err
	}
	if len(categories) > 0 {
		created.Add("categories", len(categories))
	}

	if err := s.integrateAttributes(ctx, conv, repos, product, parsed, created, updated); err != nil {
		return err
	}

	for i := range parsed.Variants {
		if err := s.integrateVariant(ctx, conv, repos, product, parsed, &parsed.Variants[i], created, updated); err != nil {
			return fmt.Errorf("variant %d: %w", parsed.Variants[i].VariantID, err)
		}
	}

	return nil
}

// integrateAttributes replaces the product's attribute links with the
// parsed set, creating attributes that do not exist yet. Links that
// re-appear for an attribute the product already carried count as
// updated, the rest as created.
func (s *Service) integrateAttributes(ctx context.Context, conv Converter, repos TransactionalRepositories,
	product *catalog.Product, parsed *ParsedProduct, created, updated catalog.Tally) error {

	existing, err := repos.Products().FindAttributeLinks(ctx, product.ID)
	if err != nil {
		return err
	}
	had := make(map[uuid.UUID]bool, len(existing))
	for i := range existing {
		had[existing[i].AttributeID] = true
	}

	if err := repos.Products().ClearAttributes(ctx, product.ID); err != nil {
		return err
	}

	for _, pa := range parsed.Attributes {
		attribute, err := conv.ConvertAttribute(ctx, pa.Name, repos.Attributes())
		if err != nil {
			return err
		}
		if err := repos.Attributes().Save(ctx, attribute); err != nil {
			return err
		}

		link, err := catalog.NewProductAttribute(product.ID, attribute.ID, pa.Position)
		if err != nil {
			return err
		}
		if err := repos.Products().SaveAttribute(ctx, link); err != nil {
			return err
		}

		if had[attribute.ID] {
			updated.Add("attributes", 1)
		} else {
			created.Add("attributes", 1)
		}
	}

	return nil
}

// integrateVariant upserts one variant and recomputes its sizings
func (s *Service) integrateVariant(ctx context.Context, conv Converter, repos TransactionalRepositories,
	product *catalog.Product, parsed *ParsedProduct, pv *ParsedVariant, created, updated catalog.Tally) error {

	converted, err := conv.ConvertVariant(pv, product.ID)
	if err != nil {
		return err
	}

	variant, err := repos.Variants().FindByOriginalID(ctx, pv.VariantID)
	switch {
	case err == nil:
		variant.ApplyListing(converted)
		updated.Add("variants", 1)
	case errors.Is(err, shared.ErrNotFound):
		variant = converted
		created.Add("variants", 1)
	default:
		return err
	}
	if err := repos.Variants().Save(ctx, variant); err != nil {
		return err
	}

	sizings, err := conv.ConvertSizings(parsed, variant)
	if err != nil {
		return err
	}

	existing, err := repos.Sizings().FindByVariant(ctx, variant.ID)
	if err != nil {
		return err
	}
	had := make(map[catalog.SizingOption]bool, len(existing))
	for i := range existing {
		had[existing[i].Option] = true
	}

	if err := repos.Sizings().DeleteByVariant(ctx, variant.ID); err != nil {
		return err
	}
	for i := range sizings {
		if err := repos.Sizings().Save(ctx, &sizings[i]); err != nil {
			return err
		}
		if had[sizings[i].Option] {
			updated.Add("sizings", 1)
		} else {
			created.Add("sizings", 1)
		}
	}

	return nil
}
