package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

// newSignupForm builds the canonical two-field form used across tests:
// a required username and an email that must be present and well-formed.
func newSignupForm() *Form {
	return New(map[string]string{"username": "", "email": ""}).
		Validates("username", Required("Username is required")).
		Validates("email", All(Required("Email is invalid"), Email("Email is invalid")))
}

func TestHandleChange(t *testing.T) {
	f := newSignupForm()

	f.HandleChange("username", "alice")
	if got := f.Value("username"); got != "alice" {
		t.Errorf("expected 'alice', got %q", got)
	}

	// Change performs no validation
	if f.HasError("username") {
		t.Error("HandleChange must not validate")
	}
}

func TestHandleChangeUnknownFieldIsNoop(t *testing.T) {
	f := newSignupForm()

	f.HandleChange("password", "secret")

	want := map[string]string{"username": "", "email": ""}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleBlurValidates(t *testing.T) {
	f := newSignupForm()

	f.HandleChange("email", "bad")
	f.HandleBlur("email")

	if got := f.FieldError("email"); got != "Email is invalid" {
		t.Errorf("expected 'Email is invalid', got %q", got)
	}

	f.HandleChange("email", "alice@x.com")
	f.HandleBlur("email")

	if f.HasError("email") {
		t.Errorf("valid value should clear error, got %q", f.FieldError("email"))
	}
}

func TestHandleBlurWithoutValidatorIsNoop(t *testing.T) {
	f := New(map[string]string{"note": ""})

	f.HandleBlur("note")

	if f.HasError("note") {
		t.Error("blur on field without validator must not set an error")
	}
	if f.IsTouched("note") {
		t.Error("blur on field without validator must not mark touched")
	}
}

func TestHandleFocusClearsOnlyThatField(t *testing.T) {
	f := newSignupForm()

	f.HandleChange("email", "bad")
	f.HandleBlur("email")
	f.HandleBlur("username") // empty, fails Required

	if !f.HasError("email") || !f.HasError("username") {
		t.Fatalf("expected errors on both fields, got %v", f.Errors())
	}

	f.HandleFocus("email")

	if f.HasError("email") {
		t.Error("focus should clear the focused field's error")
	}
	if got := f.FieldError("username"); got != "Username is required" {
		t.Errorf("focus must not touch other fields, got %q", got)
	}
}

func TestSubmitWithInvalidValues(t *testing.T) {
	f := newSignupForm()

	called := false
	f.OnSubmit(func(values map[string]string, reset func()) error {
		called = true
		return nil
	})

	// Submit immediately: both fields are empty
	err := f.HandleSubmit()

	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
	if called {
		t.Error("submit callback must not run when validation fails")
	}
	if f.IsSubmitting() {
		t.Error("submitting flag must not be raised on validation failure")
	}

	want := map[string]string{
		"username": "Username is required",
		"email":    "Email is invalid",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitWithValidValues(t *testing.T) {
	f := newSignupForm()

	var gotValues map[string]string
	calls := 0
	f.OnSubmit(func(values map[string]string, reset func()) error {
		calls++
		gotValues = values
		if !f.IsSubmitting() {
			t.Error("submitting flag should be true during the callback")
		}
		return nil
	})

	f.HandleChange("username", "alice")
	f.HandleChange("email", "alice@x.com")

	if err := f.HandleSubmit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected callback to run once, ran %d times", calls)
	}
	want := map[string]string{"username": "alice", "email": "alice@x.com"}
	if diff := cmp.Diff(want, gotValues); diff != "" {
		t.Errorf("callback values mismatch (-want +got):\n%s", diff)
	}
	if f.IsSubmitting() {
		t.Error("submitting flag should be released after the callback")
	}
	if !f.IsValid() {
		t.Errorf("expected no errors after successful submit, got %v", f.Errors())
	}
}

func TestSubmitErrorPropagatesAndReleasesFlag(t *testing.T) {
	boom := errors.New("backend rejected signup")

	f := newSignupForm().OnSubmit(func(values map[string]string, reset func()) error {
		return boom
	})
	f.HandleChange("username", "alice")
	f.HandleChange("email", "alice@x.com")

	if err := f.HandleSubmit(); !errors.Is(err, boom) {
		t.Errorf("callback error should propagate unchanged, got %v", err)
	}
	if f.IsSubmitting() {
		t.Error("submitting flag must be released even when the callback fails")
	}
}

func TestSubmitPanicReleasesFlag(t *testing.T) {
	f := newSignupForm().OnSubmit(func(values map[string]string, reset func()) error {
		panic("callback exploded")
	})
	f.HandleChange("username", "alice")
	f.HandleChange("email", "alice@x.com")

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic should propagate out of HandleSubmit")
			}
		}()
		_ = f.HandleSubmit()
	}()

	if f.IsSubmitting() {
		t.Error("submitting flag must be released after a panic")
	}
}

func TestSubmitWithoutValidatorsOrCallback(t *testing.T) {
	f := New(map[string]string{"note": "hi"})

	if err := f.HandleSubmit(); err != nil {
		t.Errorf("submit with no validators and no callback should succeed, got %v", err)
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	initial := map[string]string{"username": "guest", "email": ""}
	f := New(initial).Validates("username", Required(""))

	f.HandleChange("username", "alice")
	f.HandleChange("email", "bad")
	f.HandleBlur("email")
	f.Reset()

	if diff := cmp.Diff(initial, f.Values()); diff != "" {
		t.Errorf("values after reset mismatch (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Errorf("reset should clear errors, got %v", f.Errors())
	}
	if f.IsDirty() {
		t.Error("reset should clear dirty tracking")
	}

	// Edits after reset must not leak into the stored initial values
	f.HandleChange("username", "mallory")
	f.Reset()
	if got := f.Value("username"); got != "guest" {
		t.Errorf("initial values were mutated, got %q", got)
	}
}

func TestResetDuringSubmit(t *testing.T) {
	var f *Form
	f = newSignupForm().OnSubmit(func(values map[string]string, reset func()) error {
		reset()
		if !f.IsSubmitting() {
			t.Error("reset must not release the submitting flag")
		}
		return nil
	})

	f.HandleChange("username", "alice")
	f.HandleChange("email", "alice@x.com")

	if err := f.HandleSubmit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Value("username"); got != "" {
		t.Errorf("expected reset values after submit, got %q", got)
	}
}

func TestValuesSnapshotIsDetached(t *testing.T) {
	f := New(map[string]string{"a": "1"})

	snap := f.Values()
	snap["a"] = "mutated"

	if got := f.Value("a"); got != "1" {
		t.Errorf("mutating a snapshot must not affect the form, got %q", got)
	}
}

func TestFieldOrder(t *testing.T) {
	var order []string
	record := func(name string) Validator {
		return ValidatorFunc(func(string) error {
			order = append(order, name)
			return ValidationError{Message: name + " invalid"}
		})
	}

	f := New(map[string]string{"b": "", "a": "", "c": ""}).
		Validates("a", record("a")).
		Validates("b", record("b")).
		Validates("c", record("c")).
		FieldOrder("c", "a")

	_ = f.HandleSubmit()

	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("validation order mismatch (-want +got):\n%s", diff)
	}
}

func TestSetErrorAndClearErrors(t *testing.T) {
	f := newSignupForm()

	f.SetError("username", "Already taken")
	if got := f.FieldError("username"); got != "Already taken" {
		t.Errorf("expected manual error, got %q", got)
	}

	f.ClearErrors()
	if !f.IsValid() {
		t.Errorf("expected no errors after ClearErrors, got %v", f.Errors())
	}
}

func TestTouchedAndDirtyTracking(t *testing.T) {
	f := newSignupForm()

	if f.IsDirty() {
		t.Error("fresh form should not be dirty")
	}

	f.HandleChange("username", "alice")
	if !f.FieldDirty("username") {
		t.Error("changed field should be dirty")
	}
	if f.FieldDirty("email") {
		t.Error("unchanged field should not be dirty")
	}

	if f.IsTouched("username") {
		t.Error("change alone should not mark touched")
	}
	f.HandleBlur("username")
	if !f.IsTouched("username") {
		t.Error("blur should mark touched")
	}
}

func TestFormNotifiesObservers(t *testing.T) {
	f := newSignupForm()

	var snapshots []map[string]string
	eff := reactive.NewEffect(func() reactive.Cleanup {
		snapshots = append(snapshots, f.Values())
		return nil
	})
	defer eff.Dispose()

	f.HandleChange("username", "alice")

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[1]["username"] != "alice" {
		t.Errorf("observer should see the new value, got %q", snapshots[1]["username"])
	}
}
