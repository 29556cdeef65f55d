// Package responses defines the JSON envelopes the lab endpoints return and
// helpers for writing them. Field names follow the assignment's wire format,
// so they stay camelCase and must not change.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
)

// FetchResponse is the success envelope for the callback, promise, and
// async/await demos.
type FetchResponse struct {
	Method    string            `json:"method"`
	Message   string            `json:"message"`
	Data      models.UserRecord `json:"data"`
	Timestamp string            `json:"timestamp"`
}

// FileResponse is the success envelope for the file round-trip demo.
type FileResponse struct {
	Method    string `json:"method"`
	Message   string `json:"message"`
	FilePath  string `json:"filePath"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChainResponse is the success envelope for the chained-steps demo.
type ChainResponse struct {
	Method    string `json:"method"`
	Message   string `json:"message"`
	Results   any    `json:"results"`
	Timestamp string `json:"timestamp"`
}

// Endpoint is one entry of the index catalog.
type Endpoint struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexResponse describes the service on GET /.
type IndexResponse struct {
	Message      string     `json:"message"`
	Author       string     `json:"author"`
	Endpoints    []Endpoint `json:"endpoints"`
	Instructions string     `json:"instructions"`
}

// ErrorResponse is the failure envelope for both 404 and 500 responses.
type ErrorResponse struct {
	Error              string   `json:"error"`
	Message            string   `json:"message"`
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
}

// Fetch sends a 200 fetch envelope.
func Fetch(c *gin.Context, method, message string, user models.UserRecord) {
	c.JSON(http.StatusOK, FetchResponse{
		Method:    method,
		Message:   message,
		Data:      user,
		Timestamp: models.Timestamp(),
	})
}

// File sends a 200 file envelope.
func File(c *gin.Context, method, message, path, content string) {
	c.JSON(http.StatusOK, FileResponse{
		Method:    method,
		Message:   message,
		FilePath:  path,
		Content:   content,
		Timestamp: models.Timestamp(),
	})
}

// Chain sends a 200 chain envelope.
func Chain(c *gin.Context, method, message string, results any) {
	c.JSON(http.StatusOK, ChainResponse{
		Method:    method,
		Message:   message,
		Results:   results,
		Timestamp: models.Timestamp(),
	})
}

// NotFound sends the 404 envelope listing the valid endpoints.
func NotFound(c *gin.Context, message string, available []string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Error:              "Not Found",
		Message:            message,
		AvailableEndpoints: available,
	})
}

// InternalError sends the 500 envelope carrying the failure's message.
func InternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Message: message,
	})
}
