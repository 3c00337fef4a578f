package requests

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/nsfs"
)

// Format of a manifest document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

//go:embed university.yaml
var universityManifest []byte

// FormatFromPath picks the manifest format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown manifest file extension: %s", path)
	}
}

// LoadManifestFile reads an ordered list of node requests from a YAML or JSON file
func LoadManifestFile(path string) ([]nsfs.NodeRequest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalManifest(data, format)
}

// UnmarshalManifest decodes a manifest document. Order is preserved since
// parents must be created before their children.
func UnmarshalManifest(data []byte, format Format) ([]nsfs.NodeRequest, error) {
	var dtos []NodeRequestDTO
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format: %q", format)
	}

	reqs := make([]nsfs.NodeRequest, 0, len(dtos))
	for i, dto := range dtos {
		req, err := convertNodeDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// DemoManifest returns the built-in university layout
func DemoManifest() []nsfs.NodeRequest {
	reqs, err := UnmarshalManifest(universityManifest, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded university manifest is invalid: %v", err))
	}
	return reqs
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) (nsfs.NodeRequest, error) {
	if !dto.Type.Valid() {
		return nsfs.NodeRequest{}, fmt.Errorf("unknown node type %q for path %q", dto.Type, dto.Path)
	}
	return nsfs.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
