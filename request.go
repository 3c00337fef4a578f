package nsfs

// NodeRequest describes a single node creation passed from entrypoints
// (manifest files, cli, web api) to the namespace Create methods.
type NodeRequest struct {
	Path string
	Type NodeKind
	UUID string // Correlates the request in logs; generated when not supplied
}
