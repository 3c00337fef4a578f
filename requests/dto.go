package requests

import "github.com/brettbedarf/nsfs"

// NodeRequestDTO is the JSON/YAML representation of [nsfs.NodeRequest]
type NodeRequestDTO struct {
	Path string `json:"path" yaml:"path"`
	// "dir" or "file"
	Type nsfs.NodeKind `json:"type" yaml:"type"`
	// Optional UUID to correlate the request in logs; generated when absent
	UUID *string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
}
