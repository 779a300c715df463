package validation

import "sort"

// Field binds a rule chain to one named input.
type Field struct {
	Name  string
	Label string
	Rule  Validator
}

// Schema is the ordered set of fields a form validates.
type Schema struct {
	Form   string
	Fields []Field
}

// Field returns the named field and whether the schema declares it.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the declared field names in order.
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Check evaluates every declared field, as on submit.
func (s Schema) Check(values map[string]string) Validity {
	touched := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		touched[f.Name] = true
	}
	return Evaluate(s, values, touched)
}

// Validity is either Valid or Invalid.
type Validity interface {
	OK() bool
	sealed()
}

// Valid means no tracked field reports an error.
type Valid struct{}

// Invalid carries the message of every failing field.
type Invalid struct {
	Errors map[string]string
}

func (Valid) OK() bool   { return true }
func (Valid) sealed()    {}
func (Invalid) OK() bool { return false }
func (Invalid) sealed()  {}

// FieldNames returns the failing field names sorted.
func (i Invalid) FieldNames() []string {
	out := make([]string, 0, len(i.Errors))
	for k := range i.Errors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Evaluate computes overall validity over the touched fields only. Fields that
// were never touched do not count, so an untouched form is Valid.
func Evaluate(schema Schema, values map[string]string, touched map[string]bool) Validity {
	var errs map[string]string
	for _, f := range schema.Fields {
		if !touched[f.Name] || f.Rule == nil {
			continue
		}
		if msg := f.Rule(values[f.Name]); msg != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[f.Name] = msg
		}
	}
	if len(errs) == 0 {
		return Valid{}
	}
	return Invalid{Errors: errs}
}
