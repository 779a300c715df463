package catalog

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Country values offered by the company form. The first entry is the default.
//
//nolint:gochecknoglobals // static read-only option list
var Countries = []Country{
	{Value: "turkey", Label: "Turkey"},
	{Value: "usa", Label: "USA"},
	{Value: "germany", Label: "Germany"},
	{Value: "france", Label: "France"},
}

// DefaultCountry is preselected on new company forms.
const DefaultCountry = "turkey"

// Country is a selectable country option.
type Country struct {
	Value string
	Label string
}

// CountryValues returns the accepted country codes.
func CountryValues() []string {
	out := make([]string, 0, len(Countries))
	for _, c := range Countries {
		out = append(out, c.Value)
	}
	return out
}

// WebsitePattern accepts http(s), ftp and bare www. addresses with a 2-3 letter TLD.
var WebsitePattern = regexp.MustCompile(
	`^(http[s]?://(www\.)?|ftp://(www\.)?|www\.){1}([0-9A-Za-z-\.@:%_\+~#=]+)+((\.[a-zA-Z]{2,3})+)(/(.)*)?(\?(.)*)?`,
)

// Company is an organization record as returned by the backend.
type Company struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	LegalNumber FlexString `json:"legalNumber"`
	Country     string     `json:"country"`
	Website     string     `json:"website"`
}

// CompanyPage is one page of the company list.
type CompanyPage struct {
	Total     int       `json:"total"`
	Companies []Company `json:"companies"`
}

// CompanyInput is the create/update payload.
type CompanyInput struct {
	Name        string `json:"name"`
	LegalNumber string `json:"legalNumber"`
	Country     string `json:"country"`
	Website     string `json:"website"`
}

// Validate checks the payload before it is sent to the backend.
func (c CompanyInput) Validate() error {
	countries := make([]any, 0, len(Countries))
	for _, v := range CountryValues() {
		countries = append(countries, v)
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.LegalNumber, validation.Required),
		validation.Field(&c.Country, validation.Required, validation.In(countries...)),
		validation.Field(&c.Website, validation.Required, validation.Match(WebsitePattern)),
	)
}

// Input converts a loaded company back into an editable payload.
func (c Company) Input() CompanyInput {
	return CompanyInput{
		Name:        c.Name,
		LegalNumber: c.LegalNumber.String(),
		Country:     c.Country,
		Website:     c.Website,
	}
}
