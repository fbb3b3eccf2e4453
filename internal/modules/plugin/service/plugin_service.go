package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"eductl/internal/modules/plugin/domain"
	"eductl/internal/modules/plugin/dto"
	pluginout "eductl/internal/modules/plugin/port/out"
)

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host) *PluginService {
	return &PluginService{store: store, host: host}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *PluginService) ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error) {
	manifest, err := s.getRunnableManifest(ctx, pluginName, "")
	if err != nil {
		return nil, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FormatInfo, 0, len(formats))
	for _, format := range formats {
		out = append(out, dto.FormatInfo{
			ID:          format.ID,
			Title:       format.Title,
			Description: format.Description,
			Extension:   format.Extension,
			TimeoutMS:   format.TimeoutMS,
		})
	}
	return out, nil
}

// Export renders the given records through an exporter plugin and writes
// the result next to the caller, defaulting to <entity>.<ext> in the
// working directory.
func (s *PluginService) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.PluginName, domain.CapabilityExport)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if !json.Valid([]byte(input.ItemsJSON)) {
		return dto.ExportOutput{}, fmt.Errorf("items payload must be valid JSON")
	}
	req := domain.ExportRequest{
		FormatID:   input.FormatID,
		EntityType: input.EntityType,
		ItemsJSON:  input.ItemsJSON,
		Context: domain.ExportContext{
			BaseURL: input.BaseURL,
			Env:     input.Env,
		},
	}
	if err := req.Validate(); err != nil {
		return dto.ExportOutput{}, err
	}
	formats, err := s.host.ListFormats(ctx, manifest)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	format, err := requireFormat(formats, input.FormatID)
	if err != nil {
		return dto.ExportOutput{}, err
	}

	result, err := s.host.Export(ctx, manifest, req)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = input.EntityType + "." + format.Extension
	}
	if err := os.WriteFile(outputPath, []byte(result.Payload), 0o644); err != nil {
		return dto.ExportOutput{}, fmt.Errorf("write export: %w", err)
	}
	return dto.ExportOutput{
		PluginName: input.PluginName,
		FormatID:   input.FormatID,
		OutputPath: outputPath,
		Records:    result.Records,
		Warning:    result.Warning,
	}, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *PluginService) getRunnableManifest(ctx context.Context, pluginName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == pluginName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("plugin %q not found", pluginName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if requiredCapability != "" && !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func requireFormat(formats []domain.FormatDescriptor, formatID string) (domain.FormatDescriptor, error) {
	for _, format := range formats {
		if err := format.Validate(); err != nil {
			return domain.FormatDescriptor{}, err
		}
		if format.ID == formatID {
			return format, nil
		}
	}
	return domain.FormatDescriptor{}, fmt.Errorf("%w: %s", domain.ErrFormatNotFound, formatID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
