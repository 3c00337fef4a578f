package api

import (
	"bytes"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/printer"
)

// Store is the namespace surface served over HTTP
type Store interface {
	nsfs.Namespace
	nsfs.Lookuper
}

// Handler contains the HTTP handlers for the namespace API.
type Handler struct {
	store Store
}

// NewHandler creates a new handler over store.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// CreateRequest is the body of POST /api/directories and POST /api/files
type CreateRequest struct {
	Path string `json:"path"`
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(c echo.Context) error {
	if _, err := h.store.Resolve(nsfs.Separator); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// HandleResolve handles GET /api/nodes?path=/a/b.
func (h *Handler) HandleResolve(c echo.Context) error {
	v, err := h.store.Resolve(queryPath(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// HandleLookup handles GET /api/nodes/:id.
func (h *Handler) HandleLookup(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a positive integer"})
	}
	v, ok := h.store.Lookup(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
	}
	return c.JSON(http.StatusOK, v)
}

// HandleChildren handles GET /api/children?path=/a.
func (h *Handler) HandleChildren(c echo.Context) error {
	seq, err := h.store.ListChildren(queryPath(c))
	if err != nil {
		return mapError(c, err)
	}
	entries := slices.Collect(seq)
	if entries == nil {
		entries = []nsfs.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// HandleTree handles GET /api/tree?path=/a and renders a plain text tree.
func (h *Handler) HandleTree(c echo.Context) error {
	var buf bytes.Buffer
	if err := printer.New(&buf, false).PrintTree(h.store, queryPath(c)); err != nil {
		return mapError(c, err)
	}
	return c.String(http.StatusOK, buf.String())
}

// HandleCreateDirectory handles POST /api/directories.
func (h *Handler) HandleCreateDirectory(c echo.Context) error {
	return h.create(c, nsfs.DirKind)
}

// HandleCreateFile handles POST /api/files.
func (h *Handler) HandleCreateFile(c echo.Context) error {
	return h.create(c, nsfs.FileKind)
}

func (h *Handler) create(c echo.Context, kind nsfs.NodeKind) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	create := h.store.CreateDirectory
	if kind == nsfs.FileKind {
		create = h.store.CreateFile
	}
	if err := create(req.Path); err != nil {
		return mapError(c, err)
	}

	v, err := h.store.Resolve(req.Path)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// queryPath defaults to the root when no path is given
func queryPath(c echo.Context) string {
	if p := c.QueryParam("path"); p != "" {
		return p
	}
	return nsfs.Separator
}

// mapError converts namespace error kinds to HTTP responses.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, nsfs.ErrPathNotFound):
		return c.JSON(http.StatusNotFound, errorBody("path_not_found", err))
	case errors.Is(err, nsfs.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, errorBody("already_exists", err))
	case errors.Is(err, nsfs.ErrNotADirectory):
		return c.JSON(http.StatusBadRequest, errorBody("not_a_directory", err))
	case errors.Is(err, nsfs.ErrInvalidPath):
		return c.JSON(http.StatusBadRequest, errorBody("invalid_path", err))
	case errors.Is(err, nsfs.ErrCapacityExceeded):
		return c.JSON(http.StatusInsufficientStorage, errorBody("capacity_exceeded", err))
	case errors.Is(err, nsfs.ErrNotInitialized):
		return c.JSON(http.StatusServiceUnavailable, errorBody("not_initialized", err))
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

func errorBody(kind string, err error) echo.Map {
	return echo.Map{"error": err.Error(), "kind": kind}
}
