// Package core provides the template helpers shared by every console page.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/target/catalog-console/internal/domain/catalog"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"formatNumber": formatNumberTemplate,
		"countryLabel": CountryLabel,
		"field":        NewFieldState,
		"idString":     func(id int64) string { return strconv.FormatInt(id, 10) },
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped above.
		return template.HTML(buf.String()), nil
	}
}

// CountryLabel maps a stored country value to its display label.
func CountryLabel(value string) string {
	for _, c := range catalog.Countries {
		if strings.EqualFold(c.Value, value) {
			return c.Label
		}
	}
	return value
}

// FieldState is what the field-error partial needs to render one message slot.
type FieldState struct {
	Form    string
	Field   string
	Message string
}

// NewFieldState builds the partial data for a form field. errs may be nil.
func NewFieldState(form, field string, errs map[string]string) FieldState {
	return FieldState{Form: form, Field: field, Message: errs[field]}
}

// formatNumberTemplate formats integers with comma separators for thousands.
func formatNumberTemplate(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}

	neg := n < 0
	var s string
	if neg {
		s = strconv.FormatUint(uint64(-n), 10)
	} else {
		s = strconv.FormatUint(uint64(n), 10)
	}
	if len(s) > 3 {
		s = withCommas(s)
	}
	if neg {
		return "-" + s
	}
	return s
}

func withCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3)

	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
