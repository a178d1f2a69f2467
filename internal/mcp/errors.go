package mcpserver

import (
	"encoding/json"
	"errors"

	"slides/internal/auth"
	"slides/internal/colors"
	"slides/internal/geometry"
	"slides/internal/locator"
	"slides/internal/service"
	"slides/internal/slidesapi"

	"github.com/mark3labs/mcp-go/mcp"
)

// Error kinds reported to clients.
const (
	KindInvalidColor           = "InvalidColor"
	KindOutOfRange             = "OutOfRange"
	KindNotFound               = "NotFound"
	KindInsufficientElements   = "InsufficientElements"
	KindMissingGeometry        = "MissingGeometry"
	KindNotImplemented         = "NotImplemented"
	KindAuthenticationRequired = "AuthenticationRequired"
	KindRemoteRequestFailed    = "RemoteRequestFailed"
	KindInvalidInput           = "InvalidInput"
	KindInternal               = "Internal"
)

var kinds = []struct {
	target error
	kind   string
}{
	{colors.ErrInvalidColor, KindInvalidColor},
	{colors.ErrOutOfRange, KindOutOfRange},
	{locator.ErrNotFound, KindNotFound},
	{locator.ErrMissingGeometry, KindMissingGeometry},
	{geometry.ErrInsufficientElements, KindInsufficientElements},
	{geometry.ErrNotImplemented, KindNotImplemented},
	{auth.ErrAuthenticationRequired, KindAuthenticationRequired},
	{slidesapi.ErrRemoteRequestFailed, KindRemoteRequestFailed},
	{service.ErrInvalidInput, KindInvalidInput},
}

// classify maps err to the first matching kind; local kinds take
// precedence over RemoteRequestFailed.
func classify(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}
	return KindInternal
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func errorResult(kind string, err error) *mcp.CallToolResult {
	body := errorBody{Error: kind, Message: err.Error()}
	var apiErr *slidesapi.APIError
	if errors.As(err, &apiErr) {
		body.Status = apiErr.StatusCode
	}
	data, _ := json.Marshal(body)
	res := textResult(string(data))
	res.IsError = true
	return res
}
