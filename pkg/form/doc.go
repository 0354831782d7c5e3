// Package form provides reactive form state management with per-field
// validation.
//
// # Overview
//
// A Form owns three pieces of state: the current field values, the per-field
// error messages, and a submission-in-progress flag. It exposes the event
// handlers a view layer wires to its inputs (HandleChange, HandleBlur,
// HandleFocus, HandleSubmit) and a Reset operation. State lives in signals
// from pkg/reactive, so reading it inside an Effect subscribes the observer
// and the view refreshes automatically.
//
// # Basic Usage
//
//	f := form.New(map[string]string{"username": "", "email": ""}).
//	    Validates("username", form.Required("Username is required")).
//	    Validates("email", form.Email("Email is invalid")).
//	    OnSubmit(func(values map[string]string, reset func()) error {
//	        if err := api.Signup(values); err != nil {
//	            return err
//	        }
//	        reset()
//	        return nil
//	    })
//
//	f.HandleChange("username", "alice")
//	f.HandleBlur("username")   // validates, sets or clears the error
//	f.HandleFocus("username")  // clears the error while re-editing
//	err := f.HandleSubmit()
//
// # Validation Semantics
//
// Blur validates a single field. Focus clears that field's error. Submit
// validates every field that has a validator; if any fail, the submit
// callback is not invoked and HandleSubmit returns ErrValidationFailed.
// Errors from the submit callback itself propagate unchanged; the form's
// only guarantee is that IsSubmitting returns to false afterwards.
package form
