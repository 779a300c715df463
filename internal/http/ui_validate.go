package httpx

import (
	"net/http"
	"slices"
	"strings"

	"github.com/target/catalog-console/internal/http/validation"
)

const (
	touchedField   = "_touched"
	eventValid     = "form:valid"
	eventNotValid  = "form:not-valid"
	maxFormMemory  = 1 << 20
	fieldErrorTmpl = "field-validation"
)

// Validator answers live validation requests for the console forms.
type Validator struct {
	T       *TemplateRenderer
	Schemas map[string]validation.Schema
}

// Validate handles POST /forms/{form}/validate. The changed input names itself
// through HX-Trigger-Name; earlier inputs arrive in the hidden _touched list.
// Every touched field is re-observed so the response can raise the form-wide
// valid or not-valid signal along with the changed field's error.
func (v *Validator) Validate(w http.ResponseWriter, r *http.Request) {
	form := r.PathValue("form")
	schema, ok := v.Schemas[form]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	trigger := HXTriggerName(r)
	if _, known := schema.Field(trigger); !known {
		trigger = ""
	}

	tracker := validation.NewTracker(v.Schemas)
	tracker.Bind(form)
	var message string
	for _, name := range touchedList(r.PostFormValue(touchedField), trigger) {
		msg := tracker.Observe(name, r.PostFormValue(name))
		if name == trigger {
			message = msg
		}
	}

	event := eventValid
	if !tracker.Validity().OK() {
		event = eventNotValid
	}
	HTMX(w).Trigger(event, nil)

	data := map[string]any{
		"Form":    form,
		"Field":   trigger,
		"Message": message,
		"Touched": strings.Join(tracker.Touched(), ","),
	}
	if err := v.T.RenderFragment(w, fieldErrorTmpl, data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// touchedList merges the posted comma-separated list with the trigger field.
func touchedList(raw, trigger string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if trigger != "" && !slices.Contains(out, trigger) {
		out = append(out, trigger)
	}
	return out
}
