package core

import (
	"html/template"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	cases := map[any]string{
		0:             "0",
		999:           "999",
		1000:          "1,000",
		int64(-12345): "-12,345",
		1234567:       "1,234,567",
		"n/a":         "n/a",
	}
	for in, want := range cases {
		if got := formatNumberTemplate(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestCountryLabel(t *testing.T) {
	if got := CountryLabel("usa"); got != "USA" {
		t.Fatalf("got %q", got)
	}
	if got := CountryLabel("mars"); got != "mars" {
		t.Fatalf("unknown values pass through, got %q", got)
	}
}

func TestNewFieldState(t *testing.T) {
	got := NewFieldState("company", "website", nil)
	if got != (FieldState{Form: "company", Field: "website"}) {
		t.Fatalf("nil errors, got %+v", got)
	}
	got = NewFieldState("company", "website", map[string]string{"website": "Please use valid url"})
	if got.Message != "Please use valid url" {
		t.Fatalf("got %q", got.Message)
	}
}

func TestFuncs_OnlyTemplateHelpers(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(string) string { return "" }})
	for _, name := range []string{"formatNumber", "countryLabel", "field", "idString", "renderSection"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("missing template func %q", name)
		}
	}
	if len(funcs) != 5 {
		t.Errorf("unexpected template funcs: %d", len(funcs))
	}
}

func TestRenderSection(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(string) string { return "inner" },
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(
		`{{define "inner"}}<p>{{.}}</p>{{end}}{{define "outer"}}{{renderSection "any" .}}{{end}}`,
	))

	var out stringWriter
	if err := tmpl.ExecuteTemplate(&out, "outer", "<b>"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.s != "<p>&lt;b&gt;</p>" {
		t.Fatalf("unexpected output %q", out.s)
	}
}

type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}
