package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pluginout "eductl/internal/modules/plugin/adapter/out"
	"eductl/internal/modules/plugin/domain"
	"eductl/internal/modules/plugin/dto"
	"eductl/internal/modules/plugin/service"
)

type fakeHost struct {
	formats   []domain.FormatDescriptor
	result    domain.ExportResult
	exportErr error
	exported  []domain.ExportRequest
}

func (f *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (f *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: m.Capabilities}, nil
}

func (f *fakeHost) ListFormats(context.Context, domain.Manifest) ([]domain.FormatDescriptor, error) {
	return f.formats, nil
}

func (f *fakeHost) Export(_ context.Context, _ domain.Manifest, req domain.ExportRequest) (domain.ExportResult, error) {
	f.exported = append(f.exported, req)
	return f.result, f.exportErr
}

type memoryManifests struct {
	manifests []domain.Manifest
}

func (m *memoryManifests) Load(context.Context) ([]domain.Manifest, error) {
	return m.manifests, nil
}

func writePluginBinary(t *testing.T, dir string) (path, checksum string) {
	t.Helper()
	path = filepath.Join(dir, "exporter-plugin")
	payload := []byte("not-a-real-plugin")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

func csvFormat() domain.FormatDescriptor {
	return domain.FormatDescriptor{ID: "csv", Title: "CSV", Extension: "csv", TimeoutMS: 5000}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	pluginsDir := filepath.Join(tmp, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath, _ := writePluginBinary(t, tmp)
	manifests := []domain.Manifest{{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}
	raw, _ := json.Marshal(manifests)
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewPluginService(pluginout.NewFileManifestStore(pluginsDir), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if !results[0].BinaryReachable {
		t.Fatalf("binary exists, doctor must report it reachable")
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	t.Parallel()
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "ghost",
		Version:      "1.0.0",
		Binary:       "/nonexistent/exporter",
		SHA256:       strings.Repeat("a", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}}
	svc := service.NewPluginService(store, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if results[0].BinaryReachable || results[0].Error == "" {
		t.Fatalf("missing binary must be flagged, got %+v", results[0])
	}
}

func TestExportWritesRenderedPayload(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writePluginBinary(t, tmp)
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}}
	host := &fakeHost{
		formats: []domain.FormatDescriptor{csvFormat()},
		result:  domain.ExportResult{Payload: "title\nAlgebra\nGeometry\n", Records: 2},
	}
	svc := service.NewPluginService(store, host)

	outputPath := filepath.Join(tmp, "lessons.csv")
	out, err := svc.Export(context.Background(), dto.ExportInput{
		PluginName: "reference",
		FormatID:   "csv",
		EntityType: "lessons",
		ItemsJSON:  `[{"title":"Algebra"},{"title":"Geometry"}]`,
		OutputPath: outputPath,
		BaseURL:    "https://api.school.test",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Records != 2 || out.OutputPath != outputPath {
		t.Fatalf("unexpected output: %+v", out)
	}
	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(written) != "title\nAlgebra\nGeometry\n" {
		t.Fatalf("unexpected export content: %s", written)
	}
	if len(host.exported) != 1 || host.exported[0].Context.BaseURL != "https://api.school.test" {
		t.Fatalf("export context must reach the plugin, got %+v", host.exported)
	}
}

func TestExportRejectsInvalidItemsJSON(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writePluginBinary(t, tmp)
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}}
	svc := service.NewPluginService(store, &fakeHost{formats: []domain.FormatDescriptor{csvFormat()}})

	if _, err := svc.Export(context.Background(), dto.ExportInput{
		PluginName: "reference",
		FormatID:   "csv",
		EntityType: "lessons",
		ItemsJSON:  `{"broken":`,
	}); err == nil {
		t.Fatalf("expected invalid JSON to be rejected")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writePluginBinary(t, tmp)
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}}
	svc := service.NewPluginService(store, &fakeHost{formats: []domain.FormatDescriptor{csvFormat()}})

	_, err := svc.Export(context.Background(), dto.ExportInput{
		PluginName: "reference",
		FormatID:   "parquet",
		EntityType: "lessons",
		ItemsJSON:  `[]`,
	})
	if !errors.Is(err, domain.ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound, got %v", err)
	}
}

func TestExportRequiresCapability(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writePluginBinary(t, tmp)
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "transformer",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityTransform},
	}}}
	svc := service.NewPluginService(store, &fakeHost{})

	_, err := svc.Export(context.Background(), dto.ExportInput{
		PluginName: "transformer",
		FormatID:   "csv",
		EntityType: "lessons",
		ItemsJSON:  `[]`,
	})
	if !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
}

func TestDisabledPluginIsRefused(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writePluginBinary(t, tmp)
	store := &memoryManifests{manifests: []domain.Manifest{{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      false,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}}
	svc := service.NewPluginService(store, &fakeHost{})

	if _, err := svc.ListFormats(context.Background(), "reference"); !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := domain.Manifest{
		Name:         "dup",
		Version:      "1.0.0",
		Binary:       "/tmp/dup",
		SHA256:       strings.Repeat("a", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}
	svc := service.NewPluginService(&memoryManifests{manifests: []domain.Manifest{manifest, manifest}}, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}
