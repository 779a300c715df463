package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/domain/catalog"
)

const productResource = "product"

// ProductServiceOptions groups dependencies for ProductService.
type ProductServiceOptions struct {
	API    Requester    // Required: backend request helper
	Logger *slog.Logger // Optional: structured logger
}

// ProductService reads and writes products through the backend.
type ProductService struct {
	api    Requester
	logger *slog.Logger
}

// NewProductService constructs a ProductService.
func NewProductService(opts ProductServiceOptions) *ProductService {
	if opts.API == nil {
		panic("NewProductService: API is required") //nolint:forbidigo // Fail fast during wiring.
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{api: opts.API, logger: logger.With("component", "product_service")}
}

// List returns one page of products matching q.
func (s *ProductService) List(ctx context.Context, q catalog.ListQuery) (catalog.ProductPage, error) {
	page, err := expectCollection[catalog.ProductPage](ctx, s.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/" + productResource,
		Query:  q.Values(),
	}, "list products")
	if err != nil {
		return catalog.ProductPage{}, err
	}
	return page, nil
}

// Latest returns the most recently added products and the total count.
func (s *ProductService) Latest(ctx context.Context) (catalog.Latest[catalog.Product], error) {
	type latest struct {
		Count    int               `json:"count"`
		Products []catalog.Product `json:"products"`
	}
	res, err := expectCollection[latest](ctx, s.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/" + productResource,
		Query:  catalog.LatestProductValues(),
	}, "latest products")
	if err != nil {
		return catalog.Latest[catalog.Product]{}, err
	}
	return catalog.Latest[catalog.Product]{Count: res.Count, Items: res.Products}, nil
}

// Categories returns the category names a product may take.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	cats, err := expectCollection[[]string](ctx, s.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/" + productResource + "/categories",
	}, "list categories")
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// FormOptions loads categories and companies concurrently. The first failure
// cancels the other call and is returned.
func (s *ProductService) FormOptions(ctx context.Context) (catalog.ProductFormOptions, error) {
	var opts catalog.ProductFormOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.Categories(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		opts.Categories = cats
		return nil
	})
	g.Go(func() error {
		companies, err := allCompanies(gctx, s.api)
		if err != nil {
			return fmt.Errorf("load companies: %w", err)
		}
		opts.Companies = companies
		return nil
	})
	if err := g.Wait(); err != nil {
		return catalog.ProductFormOptions{}, err
	}
	return opts, nil
}

// Get loads one product.
func (s *ProductService) Get(ctx context.Context, id int64) (catalog.Product, error) {
	return getRecord[catalog.Product](ctx, s.api, productResource, id)
}

// Create validates in and creates the product, returning its id.
func (s *ProductService) Create(ctx context.Context, in catalog.ProductInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, validationError(err)
	}
	id, err := createRecord(ctx, s.api, productResource, in)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "product created", "product_id", id)
	return id, nil
}

// Update validates in and replaces the product's fields.
func (s *ProductService) Update(ctx context.Context, id int64, in catalog.ProductInput) error {
	if err := in.Validate(); err != nil {
		return validationError(err)
	}
	if err := updateRecord(ctx, s.api, productResource, id, in); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product updated", "product_id", id)
	return nil
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, id int64) (catalog.DeleteResult, error) {
	res, err := deleteRecord(ctx, s.api, productResource, id)
	if err != nil {
		return res, err
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id, "affected", res.Affected)
	return res, nil
}
