package form

import "log/slog"

// Validates registers a validator for a field. The field is auto-validated
// on blur and on submit; fields without a validator never are.
// Registering a second validator for the same field replaces the first;
// use All to combine several rules.
func (f *Form) Validates(field string, v Validator) *Form {
	f.validators[field] = v
	return f
}

// OnSubmit sets the submit callback invoked by HandleSubmit after all
// validators pass.
func (f *Form) OnSubmit(fn SubmitFunc) *Form {
	f.onSubmit = fn
	return f
}

// FieldOrder sets the order in which fields are validated on submit.
// Fields not listed keep their sorted position after the listed ones.
// Without this option fields validate in sorted name order.
func (f *Form) FieldOrder(names ...string) *Form {
	listed := make(map[string]bool, len(names))
	order := make([]string, 0, len(f.fieldOrder))

	for _, name := range names {
		if _, ok := f.initial[name]; ok && !listed[name] {
			listed[name] = true
			order = append(order, name)
		}
	}
	for _, name := range f.fieldOrder {
		if !listed[name] {
			order = append(order, name)
		}
	}

	f.fieldOrder = order
	return f
}

// WithLogger sets the logger used for diagnostics such as changes to
// unknown fields. Without a logger those are silent no-ops.
func (f *Form) WithLogger(logger *slog.Logger) *Form {
	f.logger = logger
	return f
}
