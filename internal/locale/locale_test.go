package locale

import (
	"errors"
	"testing"

	"curator/internal/migrate"
)

func TestResolveKnownCodes(t *testing.T) {
	cases := map[string]string{
		"de":    "de-DE",
		"en":    "en-GB",
		"en-gb": "en-GB",
		"sl":    "sl-SI",
		"sv":    "sv-SE",
	}
	for source, want := range cases {
		got, err := Resolve(source)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", source, err)
			continue
		}
		if got != want {
			t.Errorf("Resolve(%q) = %q, want %q", source, got, want)
		}
	}
}

func TestResolveUnknownCodeIsFatal(t *testing.T) {
	_, err := Resolve("xx")
	if err == nil {
		t.Fatal("expected error for unmapped locale")
	}
	if !errors.Is(err, migrate.ErrConfiguration) {
		t.Errorf("unmapped locale should carry ErrConfiguration, got %v", err)
	}
	if !migrate.Fatal(err) {
		t.Error("unmapped locale must classify as fatal")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("locale table failed validation: %v", err)
	}
}
