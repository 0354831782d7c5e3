package form

import "testing"

func TestRequired(t *testing.T) {
	v := Required("")

	if err := v.Validate(""); err == nil {
		t.Error("empty string should fail")
	}
	if err := v.Validate("   "); err == nil {
		t.Error("whitespace-only string should fail")
	}
	if err := v.Validate("x"); err != nil {
		t.Errorf("non-empty string should pass, got %v", err)
	}
}

func TestRequiredCustomMessage(t *testing.T) {
	v := Required("Username is required")

	err := v.Validate("")
	if err == nil || err.Error() != "Username is required" {
		t.Errorf("expected custom message, got %v", err)
	}
}

func TestMinLength(t *testing.T) {
	v := MinLength(3, "")

	if err := v.Validate("ab"); err == nil {
		t.Error("2 chars should fail min 3")
	}
	if err := v.Validate("abc"); err != nil {
		t.Errorf("3 chars should pass, got %v", err)
	}
	// Empty values are Required's job
	if err := v.Validate(""); err != nil {
		t.Errorf("empty should be skipped, got %v", err)
	}
	// Rune count, not byte count
	if err := v.Validate("äöü"); err != nil {
		t.Errorf("3 runes should pass, got %v", err)
	}
}

func TestMaxLength(t *testing.T) {
	v := MaxLength(3, "")

	if err := v.Validate("abcd"); err == nil {
		t.Error("4 chars should fail max 3")
	}
	if err := v.Validate("abc"); err != nil {
		t.Errorf("3 chars should pass, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	v := Email("")

	valid := []string{"a@b.co", "user.name+tag@example.com", "x@sub.domain.org"}
	for _, s := range valid {
		if err := v.Validate(s); err != nil {
			t.Errorf("%q should pass, got %v", s, err)
		}
	}

	invalid := []string{"bad", "a@b", "@example.com", "a b@c.de"}
	for _, s := range invalid {
		if err := v.Validate(s); err == nil {
			t.Errorf("%q should fail", s)
		}
	}
}

func TestPattern(t *testing.T) {
	v := Pattern(`^[a-z]+$`, "lowercase only")

	if err := v.Validate("abc"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := v.Validate("Abc"); err == nil || err.Error() != "lowercase only" {
		t.Errorf("expected 'lowercase only', got %v", err)
	}
}

func TestURLField(t *testing.T) {
	v := URLField("")

	if err := v.Validate("https://example.com/path"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := v.Validate("not a url"); err == nil {
		t.Error("expected failure")
	}
	if err := v.Validate("/relative/only"); err == nil {
		t.Error("relative URL should fail")
	}
}

func TestNumericAlpha(t *testing.T) {
	if err := Numeric("").Validate("12a"); err == nil {
		t.Error("Numeric should reject letters")
	}
	if err := Numeric("").Validate("123"); err != nil {
		t.Errorf("Numeric should pass digits, got %v", err)
	}
	if err := Alpha("").Validate("abc1"); err == nil {
		t.Error("Alpha should reject digits")
	}
	if err := AlphaNumeric("").Validate("abc123"); err != nil {
		t.Errorf("AlphaNumeric should pass, got %v", err)
	}
	if err := AlphaNumeric("").Validate("a b"); err == nil {
		t.Error("AlphaNumeric should reject spaces")
	}
}

func TestAll(t *testing.T) {
	v := All(
		Required("required"),
		MinLength(3, "too short"),
	)

	if err := v.Validate(""); err == nil || err.Error() != "required" {
		t.Errorf("expected first failure to win, got %v", err)
	}
	if err := v.Validate("ab"); err == nil || err.Error() != "too short" {
		t.Errorf("expected 'too short', got %v", err)
	}
	if err := v.Validate("abcd"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
}

func TestCustom(t *testing.T) {
	v := Custom(func(value string) error {
		if value == "taken" {
			return ValidationError{Message: "Already taken"}
		}
		return nil
	})

	if err := v.Validate("taken"); err == nil {
		t.Error("expected failure")
	}
	if err := v.Validate("free"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
}
