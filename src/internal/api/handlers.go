package api

import (
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/princess-rosella/spu-md5/src/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Handler serves the API endpoints for one loaded configuration.
type Handler struct {
	cfg     *config.Config
	version VersionInfo
	metrics *Metrics
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, version VersionInfo, metrics *Metrics) *Handler {
	return &Handler{
		cfg:     cfg,
		version: version,
		metrics: metrics,
	}
}

// writeJSON writes a JSON response wrapped in DataResponse.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes a single JSON document, rejecting unknown fields.
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validationDetails flattens validator errors into a field to message map.
func validationDetails(err error) map[string]interface{} {
	details := make(map[string]interface{})
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			switch e.Tag() {
			case "required":
				details[e.Field()] = "field is required"
			case "oneof":
				details[e.Field()] = "must be one of: " + e.Param()
			default:
				details[e.Field()] = "validation failed: " + e.Tag()
			}
		}
	}
	return details
}
