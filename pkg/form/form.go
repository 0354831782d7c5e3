package form

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

// ErrValidationFailed is returned by HandleSubmit when submit-time validation
// fails. Per-field messages are available via Errors and FieldError; the
// submit callback is not invoked.
var ErrValidationFailed = errors.New("form: validation failed")

// SubmitFunc is the submit callback. It receives a snapshot of the current
// values and a reset function that restores the form to its initial values.
// An error returned here propagates unchanged out of HandleSubmit.
type SubmitFunc func(values map[string]string, reset func()) error

// Form owns the state of one form instance: current field values, per-field
// error messages, and a submission-in-progress flag. All state is backed by
// signals, so reads inside a reactive.Effect subscribe the observer and the
// view layer can refresh whenever the form changes.
//
// The field set is fixed at construction: HandleChange on a field that was
// not present in the initial values is a no-op.
type Form struct {
	initial    map[string]string
	fieldOrder []string

	values     *reactive.Signal[map[string]string]
	errs       *reactive.Signal[map[string]string]
	touched    *reactive.Signal[map[string]bool]
	dirty      *reactive.Signal[map[string]bool]
	submitting *reactive.Signal[bool]

	validators map[string]Validator
	onSubmit   SubmitFunc
	logger     *slog.Logger
}

// New creates a form with the given initial values.
//
// The map is copied; later edits to the form never mutate the caller's map,
// and Reset always restores the values as they were at construction.
// Validators, the submit callback, and the validation order are configured
// with the chained methods Validates, OnSubmit, and FieldOrder:
//
//	f := form.New(map[string]string{"username": "", "email": ""}).
//	    Validates("username", form.Required("Username is required")).
//	    Validates("email", form.Email("Email is invalid")).
//	    OnSubmit(func(values map[string]string, reset func()) error {
//	        return api.Signup(values["username"], values["email"])
//	    })
func New(initialValues map[string]string) *Form {
	initial := make(map[string]string, len(initialValues))
	for k, v := range initialValues {
		initial[k] = v
	}

	// Maps carry no order, so validation runs in sorted field order unless
	// FieldOrder is configured.
	order := make([]string, 0, len(initial))
	for k := range initial {
		order = append(order, k)
	}
	sort.Strings(order)

	return &Form{
		initial:    initial,
		fieldOrder: order,
		values:     reactive.NewSignal(copyValues(initial)),
		errs:       reactive.NewSignal(make(map[string]string)),
		touched:    reactive.NewSignal(make(map[string]bool)),
		dirty:      reactive.NewSignal(make(map[string]bool)),
		submitting: reactive.NewSignal(false),
		validators: make(map[string]Validator),
	}
}

// HandleChange sets the value of a field. It performs no validation.
// Changing a field that was not present in the initial values is a no-op
// (logged at debug level when a logger is configured).
func (f *Form) HandleChange(field, value string) {
	if _, ok := f.initial[field]; !ok {
		if f.logger != nil {
			f.logger.Debug("change on unknown field", "field", field)
		}
		return
	}

	reactive.Batch(func() {
		f.values.Update(func(m map[string]string) map[string]string {
			next := copyValues(m)
			next[field] = value
			return next
		})
		f.dirty.Update(func(m map[string]bool) map[string]bool {
			next := copyFlags(m)
			next[field] = true
			return next
		})
	})
}

// HandleBlur validates the field's current value if a validator is
// registered for it. On failure the field's error message is set; on success
// it is cleared. Fields without a validator are untouched.
func (f *Form) HandleBlur(field string) {
	if _, ok := f.validators[field]; !ok {
		return
	}
	f.ValidateField(field)
}

// HandleFocus clears the field's error message unconditionally, so the
// message disappears as soon as the user starts re-editing the field.
func (f *Form) HandleFocus(field string) {
	f.errs.Update(func(m map[string]string) map[string]string {
		if _, ok := m[field]; !ok {
			return m
		}
		next := copyValues(m)
		delete(next, field)
		return next
	})
}

// HandleSubmit validates every field that has a validator, in field order.
//
// If any field fails, the corresponding error messages are set, the submit
// callback is not invoked, the submitting flag is never raised, and
// ErrValidationFailed is returned.
//
// If all fields pass, the submitting flag is raised, the callback runs with
// a snapshot of the values and the Reset function, and the flag is released
// when the callback returns, whether or not it failed. A callback error (or
// panic) propagates unchanged; the only guarantee here is that the
// submitting flag is always released.
func (f *Form) HandleSubmit() error {
	if !f.Validate() {
		return ErrValidationFailed
	}

	f.submitting.Set(true)
	defer f.submitting.Set(false)

	if f.onSubmit == nil {
		return nil
	}
	return f.onSubmit(f.Values(), f.Reset)
}

// Reset restores the values to a fresh copy of the initial values and clears
// all errors and touched/dirty tracking. It does not touch the submitting
// flag: Reset is handed to the submit callback and may run while a
// submission is still in flight.
func (f *Form) Reset() {
	reactive.Batch(func() {
		f.values.Set(copyValues(f.initial))
		f.errs.Set(make(map[string]string))
		f.touched.Set(make(map[string]bool))
		f.dirty.Set(make(map[string]bool))
	})
}

// Validate runs every registered validator in field order and replaces the
// error map with the failures. Returns true if the form is valid.
func (f *Form) Validate() bool {
	values := f.values.Peek()
	allErrors := make(map[string]string)

	for _, field := range f.fieldOrder {
		v, ok := f.validators[field]
		if !ok {
			continue
		}
		if err := v.Validate(values[field]); err != nil {
			allErrors[field] = err.Error()
		}
	}

	f.errs.Set(allErrors)
	return len(allErrors) == 0
}

// ValidateField validates a single field and returns true if it is valid.
// The field is marked as touched.
func (f *Form) ValidateField(field string) bool {
	v, ok := f.validators[field]
	if !ok {
		return true
	}

	err := v.Validate(f.values.Peek()[field])

	reactive.Batch(func() {
		f.errs.Update(func(m map[string]string) map[string]string {
			next := copyValues(m)
			if err != nil {
				next[field] = err.Error()
			} else {
				delete(next, field)
			}
			return next
		})
		f.touched.Update(func(m map[string]bool) map[string]bool {
			next := copyFlags(m)
			next[field] = true
			return next
		})
	})

	return err == nil
}

// Values returns a copy of the current field values.
func (f *Form) Values() map[string]string {
	return copyValues(f.values.Get())
}

// Value returns the current value of a single field.
func (f *Form) Value(field string) string {
	return f.values.Get()[field]
}

// Errors returns a copy of the current error messages keyed by field name.
func (f *Form) Errors() map[string]string {
	return copyValues(f.errs.Get())
}

// FieldError returns the error message for a field, or "" if the field has
// no error.
func (f *Form) FieldError(field string) string {
	return f.errs.Get()[field]
}

// HasError reports whether the field currently has an error message.
func (f *Form) HasError(field string) bool {
	_, ok := f.errs.Get()[field]
	return ok
}

// SetError sets an error message for a field manually. This is how
// server-side failures are attached to a field after submission.
func (f *Form) SetError(field, msg string) {
	f.errs.Update(func(m map[string]string) map[string]string {
		next := copyValues(m)
		next[field] = msg
		return next
	})
}

// ClearErrors removes all error messages.
func (f *Form) ClearErrors() {
	f.errs.Set(make(map[string]string))
}

// IsSubmitting reports whether a submission is currently in flight.
// The caller is expected to disable the submit control while this is true;
// the form does not itself reject overlapping HandleSubmit calls.
func (f *Form) IsSubmitting() bool {
	return f.submitting.Get()
}

// IsValid reports whether the form currently has no error messages.
func (f *Form) IsValid() bool {
	return len(f.errs.Get()) == 0
}

// IsTouched reports whether the field has been validated at least once
// since construction or the last Reset.
func (f *Form) IsTouched(field string) bool {
	return f.touched.Get()[field]
}

// IsDirty reports whether any field has been changed.
func (f *Form) IsDirty() bool {
	return len(f.dirty.Get()) > 0
}

// FieldDirty reports whether the specific field has been changed.
func (f *Form) FieldDirty(field string) bool {
	return f.dirty.Get()[field]
}

// copyValues returns a fresh copy of a string map.
func copyValues(m map[string]string) map[string]string {
	next := make(map[string]string, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// copyFlags returns a fresh copy of a bool map.
func copyFlags(m map[string]bool) map[string]bool {
	next := make(map[string]bool, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}
