package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/target/catalog-console/internal/domain/catalog"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Companies *CompanyService // Required
	Products  *ProductService // Required
}

// Overview is the content of the landing page.
type Overview struct {
	Companies catalog.Latest[catalog.Company]
	Products  catalog.Latest[catalog.Product]
}

// DashboardService assembles the landing page tables.
type DashboardService struct {
	companies *CompanyService
	products  *ProductService
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Companies == nil || opts.Products == nil {
		panic("NewDashboardService: Companies and Products are required") //nolint:forbidigo // Fail fast during wiring.
	}
	return &DashboardService{companies: opts.Companies, products: opts.Products}
}

// Overview loads the latest companies and products in parallel.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest, err := s.companies.Latest(gctx)
		if err != nil {
			return fmt.Errorf("latest companies: %w", err)
		}
		out.Companies = latest
		return nil
	})
	g.Go(func() error {
		latest, err := s.products.Latest(gctx)
		if err != nil {
			return fmt.Errorf("latest products: %w", err)
		}
		out.Products = latest
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
