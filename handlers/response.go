package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// apiError sends a JSON error body with the given status code. Handlers use
// it for every failure path so clients always get the same error shape.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}
