package validation

import (
	"github.com/target/catalog-console/internal/domain/catalog"
)

// Form ids accepted by the validate endpoint.
const (
	FormLogin    = "login"
	FormRegister = "register"
	FormCompany  = "company"
	FormProduct  = "product"
)

// LoginSchema validates the login form.
func LoginSchema() Schema {
	return Schema{Form: FormLogin, Fields: []Field{
		{Name: "email", Label: "Email", Rule: Chain(NotEmpty("Email"), Email("Email"))},
		{Name: "password", Label: "Password", Rule: NotEmpty("Password")},
	}}
}

// RegisterSchema validates the registration form.
func RegisterSchema() Schema {
	return Schema{Form: FormRegister, Fields: []Field{
		{Name: "firstName", Label: "First name", Rule: Required("First name", 200)},
		{Name: "lastName", Label: "Last name", Rule: Required("Last name", 200)},
		{Name: "email", Label: "Email", Rule: Chain(NotEmpty("Email"), Email("Email"))},
		{Name: "password", Label: "Password", Rule: NotEmpty("Password")},
	}}
}

// CompanySchema validates the company add and edit forms.
func CompanySchema() Schema {
	return Schema{Form: FormCompany, Fields: []Field{
		{Name: "name", Label: "Name", Rule: Required("Name", 255)},
		{Name: "website", Label: "Website", Rule: Chain(NotEmpty("Website"), Pattern("Website", catalog.WebsitePattern))},
		{Name: "country", Label: "Country", Rule: Chain(NotEmpty("Country"), OneOf("Country", catalog.CountryValues()))},
		{Name: "legalNumber", Label: "Legal number", Rule: NotEmpty("Legal number")},
	}}
}

// ProductSchema validates the product add and edit forms.
func ProductSchema() Schema {
	return Schema{Form: FormProduct, Fields: []Field{
		{Name: "name", Label: "Name", Rule: Required("Name", 255)},
		{Name: "amount", Label: "Amount", Rule: Chain(NotEmpty("Amount"), Integer("Amount"))},
		{Name: "category", Label: "Category", Rule: NotValue("Category", catalog.CategoryPlaceholder)},
		{Name: "company", Label: "Company", Rule: NotValue("Company", catalog.CompanyPlaceholder)},
	}}
}

// Schemas returns every form schema keyed by form id.
func Schemas() map[string]Schema {
	out := make(map[string]Schema, 4)
	for _, s := range []Schema{LoginSchema(), RegisterSchema(), CompanySchema(), ProductSchema()} {
		out[s.Form] = s
	}
	return out
}
