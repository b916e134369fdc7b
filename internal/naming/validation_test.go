package naming

import (
	"errors"
	"strings"
	"testing"

	"github.com/platform9/pcdmanager/domain/model"
)

func TestValidateShortName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "acme", wantErr: false},
		{name: "valid with hyphen", value: "acme-qa", wantErr: false},
		{name: "max length", value: strings.Repeat("a", shortNameMaxLength), wantErr: false},
		{name: "too long", value: strings.Repeat("a", shortNameMaxLength+1), wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "uppercase", value: "Acme", wantErr: true},
		{name: "underscore", value: "ac_me", wantErr: true},
		{name: "dot", value: "ac.me", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateShortName(tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateShortName(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, model.ErrValidation) {
				t.Errorf("error should wrap ErrValidation: %v", err)
			}
		})
	}
}

func TestValidateRegionName(t *testing.T) {
	cases := []struct {
		name    string
		region  string
		wantErr bool
	}{
		{name: "lower", region: "east", wantErr: false},
		{name: "mixed case", region: "East1", wantErr: false},
		{name: "reserved infra", region: "infra", wantErr: true},
		{name: "empty means infra", region: "", wantErr: true},
		{name: "space", region: "us east", wantErr: true},
		{name: "combined too long", region: strings.Repeat("r", 60), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateRegionName("acme", tc.region); (err != nil) != tc.wantErr {
				t.Fatalf("ValidateRegionName(%q) error = %v, wantErr %v", tc.region, err, tc.wantErr)
			}
		})
	}
}

func TestValidateTag(t *testing.T) {
	for _, ok := range []string{"QA", "Don't Delete", "PCD-V", " Sales "} {
		if err := ValidateTag(ok); err != nil {
			t.Errorf("ValidateTag(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "   ", "a,b", strings.Repeat("t", tagMaxLength+1)} {
		if err := ValidateTag(bad); !errors.Is(err, model.ErrValidation) {
			t.Errorf("ValidateTag(%q) = %v, want validation error", bad, err)
		}
	}
}

func TestValidateFQDN(t *testing.T) {
	if err := ValidateFQDN("acme-east.app.dev-pcd.platform9.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFQDN("acme east.example.com"); err == nil {
		t.Error("expected error for space in fqdn")
	}
}
