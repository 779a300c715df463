package validation

import "sort"

// Tracker follows the fields of one bound form as they are observed.
// It is not safe for concurrent use; the HTTP layer builds one per request.
type Tracker struct {
	schemas map[string]Schema
	form    string
	values  map[string]string
	touched map[string]bool
}

// NewTracker returns a tracker that can bind to any form in schemas.
func NewTracker(schemas map[string]Schema) *Tracker {
	t := &Tracker{schemas: schemas}
	t.reset("")
	return t
}

func (t *Tracker) reset(form string) {
	t.form = form
	t.values = make(map[string]string)
	t.touched = make(map[string]bool)
}

// Bind attaches the tracker to form. Binding to a different form discards
// every observed field. It reports whether the form is known.
func (t *Tracker) Bind(form string) bool {
	if form != t.form {
		t.reset(form)
	}
	_, ok := t.schemas[form]
	return ok
}

// Form returns the bound form id.
func (t *Tracker) Form() string { return t.form }

// Observe records a field change and returns its error message, or "" when valid.
// Fields the bound schema does not declare are ignored.
func (t *Tracker) Observe(field, value string) string {
	schema, ok := t.schemas[t.form]
	if !ok {
		return ""
	}
	f, ok := schema.Field(field)
	if !ok {
		return ""
	}
	t.values[field] = value
	t.touched[field] = true
	if f.Rule == nil {
		return ""
	}
	return f.Rule(value)
}

// Validity recomputes overall validity across every observed field.
func (t *Tracker) Validity() Validity {
	schema, ok := t.schemas[t.form]
	if !ok {
		return Valid{}
	}
	return Evaluate(schema, t.values, t.touched)
}

// Touched returns the observed field names sorted.
func (t *Tracker) Touched() []string {
	out := make([]string, 0, len(t.touched))
	for k := range t.touched {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
