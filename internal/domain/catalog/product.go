package catalog

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Placeholder select values that mean "nothing chosen yet".
const (
	CategoryPlaceholder = "category"
	CompanyPlaceholder  = "company"
)

// CompanyRef references a company by id inside a product payload.
type CompanyRef struct {
	ID int64 `json:"id"`
}

// Product is an inventory item as returned by the backend.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   int64   `json:"amount"`
	Category string  `json:"category"`
	Company  Company `json:"company"`
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name     string     `json:"name"`
	Amount   int64      `json:"amount"`
	Category string     `json:"category"`
	Company  CompanyRef `json:"company"`
}

// Validate checks the payload before it is sent to the backend.
func (p ProductInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Category, validation.Required, validation.By(notPlaceholder(CategoryPlaceholder))),
		validation.Field(&p.Company, validation.By(func(value any) error {
			ref, _ := value.(CompanyRef)
			if ref.ID <= 0 {
				return errCompanyRequired
			}
			return nil
		})),
	)
}

var (
	errCompanyRequired = errors.New("must select a company")
	errPlaceholder     = errors.New("must select a value")
)

func notPlaceholder(placeholder string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); s == placeholder {
			return errPlaceholder
		}
		return nil
	}
}

// Input converts a loaded product back into an editable payload.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Amount:   p.Amount,
		Category: p.Category,
		Company:  CompanyRef{ID: p.Company.ID},
	}
}

// ProductFormOptions are the reference lists a product form needs before it can be submitted.
type ProductFormOptions struct {
	Categories []string
	Companies  []Company
}
