package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilityExport    Capability = "export"
	CapabilityTransform Capability = "transform"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrFormatNotFound    = errors.New("export format not found")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityExport, CapabilityTransform:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// FormatDescriptor names one export format a plugin can render, with the
// file extension it produces.
type FormatDescriptor struct {
	ID          string
	Title       string
	Description string
	Extension   string
	TimeoutMS   int
}

func (d FormatDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("format id is required")
	}
	if d.Extension == "" {
		return fmt.Errorf("format extension is required")
	}
	return nil
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ExportContext carries ambient facts an exporter may bake into its output
// header, such as where the records came from.
type ExportContext struct {
	BaseURL string
	Env     map[string]string
}

type ExportRequest struct {
	FormatID   string
	EntityType string
	ItemsJSON  string
	Context    ExportContext
}

func (r ExportRequest) Validate() error {
	if r.FormatID == "" {
		return fmt.Errorf("format id is required")
	}
	if r.EntityType == "" {
		return fmt.Errorf("entity type is required")
	}
	if r.ItemsJSON == "" {
		return fmt.Errorf("items payload is required")
	}
	return nil
}

// ExportResult is the rendered document plus how many records made it in.
// The host owns writing the payload to disk.
type ExportResult struct {
	Payload string
	Records int
	Warning string
}
