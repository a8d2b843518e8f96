// Tool-surface HTTP bridge.
//
// This file exposes the tool-invocation surface over the same Gin router as
// the REST API, so programmatic agents get a wire transport without running
// a second process:
//   - GET  /tools              (catalog for discovery)
//   - POST /tools/{name}       (invoke one tool with a JSON argument body)
//   - GET  /resources?uri=...  (read-only messaging:// resource snapshot)
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-messaging-backend/internal/mcp"
)

// ToolServer is the tool-invocation surface consumed by the HTTP bridge.
type ToolServer interface {
	// Tools returns the catalog of registered tools.
	Tools() []mcp.ToolInfo
	// Call invokes a named tool with raw JSON arguments.
	Call(ctx context.Context, name string, args json.RawMessage) (any, error)
	// ReadResource returns an indented JSON snapshot for a messaging:// URI.
	ReadResource(ctx context.Context, uri string) (string, error)
}

// ToolHandlers groups the HTTP endpoints of the tool surface.
type ToolHandlers struct {
	srv ToolServer
}

// NewTools constructs ToolHandlers bound to the given tool server.
func NewTools(srv ToolServer) *ToolHandlers {
	return &ToolHandlers{srv: srv}
}

// statusForKind maps a tool error kind onto an HTTP status and the matching
// stable error code.
func statusForKind(kind mcp.ErrorKind) (int, string) {
	switch kind {
	case mcp.KindValidation:
		return http.StatusBadRequest, ErrCodeBadRequest
	case mcp.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case mcp.KindConflict:
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// failToolErr writes the envelope for a tool-surface failure.
func failToolErr(c *gin.Context, err error) {
	var te *mcp.ToolError
	if errors.As(err, &te) {
		status, code := statusForKind(te.Kind)
		fail(c, status, code, te.Message)
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}

// ListTools godoc
// @ID          listTools
// @Summary     Tool catalog
// @Tags        Tools
// @Produce     json
// @Success     200  {array}  mcp.ToolInfo
// @Router      /tools [get]
func (h *ToolHandlers) ListTools(c *gin.Context) {
	ok(c, http.StatusOK, h.srv.Tools())
}

// InvokeTool godoc
// @ID          invokeTool
// @Summary     Invoke a named tool
// @Description Runs one tool with the JSON request body as its arguments. An empty body means no arguments.
// @Tags        Tools
// @Accept      json
// @Produce     json
// @Param       name  path  string  true  "Tool name (e.g. send_message)"
// @Success     200  {object}  any
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown tool or invalid arguments"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse
// @Router      /tools/{name} [post]
func (h *ToolHandlers) InvokeTool(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable request body")
		return
	}

	res, err := h.srv.Call(c.Request.Context(), c.Param("name"), json.RawMessage(body))
	if err != nil {
		failToolErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// ReadResource godoc
// @ID          readResource
// @Summary     Read a messaging:// resource snapshot
// @Tags        Tools
// @Produce     json
// @Param       uri  query  string  true  "Resource URI"  example(messaging://users)
// @Success     200  {string}  string  "Indented JSON snapshot"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown URI"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /resources [get]
func (h *ToolHandlers) ReadResource(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing uri query parameter")
		return
	}

	snap, err := h.srv.ReadResource(c.Request.Context(), uri)
	if err != nil {
		failToolErr(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(snap))
}
