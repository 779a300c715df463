package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/domain/catalog"
)

const companyResource = "company"

// CompanyServiceOptions groups dependencies for CompanyService.
type CompanyServiceOptions struct {
	API    Requester    // Required: backend request helper
	Logger *slog.Logger // Optional: structured logger
}

// CompanyService reads and writes companies through the backend.
type CompanyService struct {
	api    Requester
	logger *slog.Logger
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(opts CompanyServiceOptions) *CompanyService {
	if opts.API == nil {
		panic("NewCompanyService: API is required") //nolint:forbidigo // Fail fast during wiring.
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{api: opts.API, logger: logger.With("component", "company_service")}
}

// List returns one page of companies matching q.
func (s *CompanyService) List(ctx context.Context, q catalog.ListQuery) (catalog.CompanyPage, error) {
	page, err := expectCollection[catalog.CompanyPage](ctx, s.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/" + companyResource,
		Query:  q.Values(),
	}, "list companies")
	if err != nil {
		return catalog.CompanyPage{}, err
	}
	return page, nil
}

// Latest returns the most recently added companies and the total count.
func (s *CompanyService) Latest(ctx context.Context) (catalog.Latest[catalog.Company], error) {
	type latest struct {
		Count     int               `json:"count"`
		Companies []catalog.Company `json:"companies"`
	}
	res, err := expectCollection[latest](ctx, s.api, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/" + companyResource,
		Query:  catalog.LatestCompanyValues(),
	}, "latest companies")
	if err != nil {
		return catalog.Latest[catalog.Company]{}, err
	}
	return catalog.Latest[catalog.Company]{Count: res.Count, Items: res.Companies}, nil
}

// All returns every company, used to populate select inputs.
func (s *CompanyService) All(ctx context.Context) ([]catalog.Company, error) {
	return allCompanies(ctx, s.api)
}

// Get loads one company.
func (s *CompanyService) Get(ctx context.Context, id int64) (catalog.Company, error) {
	return getRecord[catalog.Company](ctx, s.api, companyResource, id)
}

// Create validates in and creates the company, returning its id.
func (s *CompanyService) Create(ctx context.Context, in catalog.CompanyInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, validationError(err)
	}
	id, err := createRecord(ctx, s.api, companyResource, in)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "company created", "company_id", id)
	return id, nil
}

// Update validates in and replaces the company's fields.
func (s *CompanyService) Update(ctx context.Context, id int64, in catalog.CompanyInput) error {
	if err := in.Validate(); err != nil {
		return validationError(err)
	}
	if err := updateRecord(ctx, s.api, companyResource, id, in); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "company updated", "company_id", id)
	return nil
}

// Delete removes the company and, on the backend, its products.
func (s *CompanyService) Delete(ctx context.Context, id int64) (catalog.DeleteResult, error) {
	res, err := deleteRecord(ctx, s.api, companyResource, id)
	if err != nil {
		return res, err
	}
	s.logger.InfoContext(ctx, "company deleted", "company_id", id, "affected", res.Affected)
	return res, nil
}
