package theme

import "testing"

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { Active = Dark })

	SetActive("ccmonitor-light")
	if Active.Name != "ccmonitor-light" {
		t.Errorf("Active = %q, want ccmonitor-light", Active.Name)
	}

	SetActive("no-such-theme")
	if Active.Name != "ccmonitor-light" {
		t.Errorf("unknown name changed the theme to %q", Active.Name)
	}
}
