package testutil

import "github.com/target/catalog-console/internal/domain/catalog"

// CompanyBuilder provides a fluent interface for building catalog.Company values for testing.
type CompanyBuilder struct {
	c catalog.Company
}

// NewCompany creates a CompanyBuilder with sensible defaults.
func NewCompany() *CompanyBuilder {
	return &CompanyBuilder{c: catalog.Company{
		ID:          1,
		Name:        "Acme",
		LegalNumber: "1234567890",
		Country:     catalog.DefaultCountry,
		Website:     "https://www.acme.com",
	}}
}

// WithID sets the company id.
func (b *CompanyBuilder) WithID(id int64) *CompanyBuilder {
	b.c.ID = id
	return b
}

// WithName sets the company name.
func (b *CompanyBuilder) WithName(name string) *CompanyBuilder {
	b.c.Name = name
	return b
}

// Build returns the company.
func (b *CompanyBuilder) Build() catalog.Company {
	return b.c
}

// ProductBuilder provides a fluent interface for building catalog.Product values for testing.
type ProductBuilder struct {
	p catalog.Product
}

// NewProduct creates a ProductBuilder with sensible defaults.
func NewProduct() *ProductBuilder {
	return &ProductBuilder{p: catalog.Product{
		ID:       1,
		Name:     "Bolt",
		Amount:   10,
		Category: "tools",
		Company:  NewCompany().Build(),
	}}
}

// WithID sets the product id.
func (b *ProductBuilder) WithID(id int64) *ProductBuilder {
	b.p.ID = id
	return b
}

// WithName sets the product name.
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.p.Name = name
	return b
}

// WithCompany sets the owning company.
func (b *ProductBuilder) WithCompany(c catalog.Company) *ProductBuilder {
	b.p.Company = c
	return b
}

// Build returns the product.
func (b *ProductBuilder) Build() catalog.Product {
	return b.p
}
