package env

import "testing"

func TestGetString(t *testing.T) {
	t.Setenv("CROPBOX_TEST_STR", "value")

	if got := GetString("CROPBOX_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetString = %q, want value", got)
	}
	if got := GetString("CROPBOX_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString = %q, want fallback", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("CROPBOX_TEST_INT", "42")
	t.Setenv("CROPBOX_TEST_BAD_INT", "forty-two")

	if got := GetInt("CROPBOX_TEST_INT", 7); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	if got := GetInt("CROPBOX_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt with malformed value = %d, want fallback 7", got)
	}
	if got := GetInt("CROPBOX_TEST_MISSING", 7); got != 7 {
		t.Errorf("GetInt = %d, want fallback 7", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("CROPBOX_TEST_BOOL", "true")
	t.Setenv("CROPBOX_TEST_BAD_BOOL", "yep")

	if got := GetBool("CROPBOX_TEST_BOOL", false); !got {
		t.Error("GetBool = false, want true")
	}
	if got := GetBool("CROPBOX_TEST_BAD_BOOL", false); got {
		t.Error("GetBool with malformed value should return fallback")
	}
}
