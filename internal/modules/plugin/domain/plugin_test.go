package domain_test

import (
	"strings"
	"testing"

	"eductl/internal/modules/plugin/domain"
)

func validSHA() string { return strings.Repeat("a", 64) }

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: true},
		{name: "missing sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: strings.Repeat("A", 64), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport}}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true}, shouldErr: true},
		{name: "invalid capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{"invalid"}}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA(), Enabled: true, Capabilities: []domain.Capability{domain.CapabilityExport, domain.CapabilityExport}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestCapabilityValidation(t *testing.T) {
	t.Parallel()
	if err := domain.CapabilityExport.Validate(); err != nil {
		t.Fatalf("validate capability: %v", err)
	}
	if err := domain.Capability("invalid").Validate(); err == nil {
		t.Fatalf("expected invalid capability error")
	}
	manifest := domain.Manifest{Capabilities: []domain.Capability{domain.CapabilityExport}}
	if !manifest.HasCapability(domain.CapabilityExport) {
		t.Fatalf("expected capability to exist")
	}
	if manifest.HasCapability(domain.CapabilityTransform) {
		t.Fatalf("did not expect transform capability")
	}
}

func TestFormatAndRequestValidation(t *testing.T) {
	t.Parallel()
	if err := (domain.FormatDescriptor{ID: "csv", Extension: "csv"}).Validate(); err != nil {
		t.Fatalf("format validate: %v", err)
	}
	if err := (domain.FormatDescriptor{ID: "csv"}).Validate(); err == nil {
		t.Fatalf("expected missing extension error")
	}
	if err := (domain.ExportRequest{FormatID: "csv", EntityType: "lessons", ItemsJSON: "[]"}).Validate(); err != nil {
		t.Fatalf("request validate: %v", err)
	}
	if err := (domain.ExportRequest{FormatID: "csv", EntityType: "lessons"}).Validate(); err == nil {
		t.Fatalf("expected missing items error")
	}
}
