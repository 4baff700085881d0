package api

import (
	"encoding/json" // JSON error types
	"errors"        // Error inspection
	"io"            // Empty body detection
	"net/http"      // HTTP status codes
	"reflect"       // Struct tag lookup
	"strconv"       // Path parameter parsing
	"strings"       // String manipulation

	"finance_tracker/internal/domain"     // Importing domain errors
	"finance_tracker/internal/middleware" // Authentication messages

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

// Success messages
const (
	msgListed    = "Items retrieved successfully"
	msgCreated   = "Item created successfully"
	msgRetrieved = "Item retrieved successfully"
	msgUpdated   = "Item updated successfully"
	msgDeleted   = "Item deleted successfully"
)

// Messages for errors without field details
const (
	msgNotFound      = "Not found."
	msgInvalidPage   = "Invalid page."
	msgServerError   = "A server error occurred."
	msgBadToken      = "Token is invalid or expired"
	msgBadLogin      = "No active account found with the given credentials."
	msgCategoryInUse = "Cannot delete this category because it is referenced by incomes, expenses or budgets."
)

var errInvalidPage = errors.New("invalid page")

// respondOK writes a success envelope; data and message are omitted when empty
func respondOK(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondDetail writes an error envelope carrying a single detail message
func respondDetail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"detail": msg},
		"message": msg,
	})
}

// respondError maps an error onto its status code and writes the error envelope
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verr.Fields,
			"message": verr.Summary(),
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		respondDetail(c, http.StatusUnauthorized, middleware.MsgNoCredentials)
	case errors.Is(err, domain.ErrInvalidToken):
		respondDetail(c, http.StatusUnauthorized, msgBadToken)
	case errors.Is(err, domain.ErrBadCredentials):
		respondDetail(c, http.StatusUnauthorized, msgBadLogin)
	case errors.Is(err, domain.ErrNotFound):
		respondDetail(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, errInvalidPage):
		respondDetail(c, http.StatusNotFound, msgInvalidPage)
	case errors.Is(err, domain.ErrConflict):
		respondDetail(c, http.StatusConflict, msgCategoryInUse)
	default:
		// Log the unexpected error with context
		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("requestID"),
			"error":      err.Error(),
		}).Error("Request failed")
		respondDetail(c, http.StatusInternalServerError, msgServerError)
	}
}

// bindJSON decodes the body into req; an empty body leaves req untouched
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return bindingError(err)
	}
	return nil
}

// bindingError turns decoding and binding failures into field keyed validation errors
func bindingError(err error) error {
	verr := &domain.ValidationError{}
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fieldMessage(fe.Tag()))
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr.Add(typeErr.Field, "Invalid value of type "+typeErr.Value+".")
	default:
		verr.Add(domain.NonFieldErrors, "JSON parse error - "+err.Error())
	}
	return verr
}

func fieldMessage(tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}

// jsonFieldName reports struct fields by their JSON names in validation errors
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// pathID parses the :id path parameter; malformed ids are reported as not found
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrNotFound
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's id set by the JWT middleware
func currentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}

// queryBool reads true/1 as true and anything else as false; nil when absent
func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v := strings.EqualFold(raw, "true") || raw == "1"
	return &v
}

// queryInt reads an integer query parameter; nil when absent or not numeric
func queryInt(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
