package requests

import (
	"fmt"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/internal/util"
)

// Failure is a request that could not be applied
type Failure struct {
	Request nsfs.NodeRequest
	Err     error
}

// Result summarizes an [Apply] run
type Result struct {
	Dirs     int // Directories created
	Files    int // Files created
	Failures []Failure
}

// Create dispatches a single request to the matching namespace operation
func Create(ns nsfs.Namespace, req nsfs.NodeRequest) error {
	switch req.Type {
	case nsfs.DirKind:
		return ns.CreateDirectory(req.Path)
	case nsfs.FileKind:
		return ns.CreateFile(req.Path)
	default:
		return fmt.Errorf("unknown node type %q", req.Type)
	}
}

// Apply creates every request in order. A failed request is recorded and
// the remaining requests are still attempted.
func Apply(ns nsfs.Namespace, reqs []nsfs.NodeRequest) Result {
	logger := util.GetLogger("requests.Apply")

	var res Result
	for _, req := range reqs {
		if err := Create(ns, req); err != nil {
			logger.Debug().Err(err).Str("uuid", req.UUID).Str("path", req.Path).Msg("Failed to apply request")
			res.Failures = append(res.Failures, Failure{Request: req, Err: err})
			continue
		}
		if req.Type.IsDir() {
			res.Dirs++
		} else {
			res.Files++
		}
	}
	logger.Info().Int("directories", res.Dirs).Int("files", res.Files).Int("failed", len(res.Failures)).
		Msg("Applied node requests")
	return res
}
