package api

import (
	"github.com/princess-rosella/spu-md5/src/internal/hashing"
	"github.com/princess-rosella/spu-md5/src/internal/selfcheck"
)

// DataResponse wraps all successful payloads.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// Encodings accepted by DigestRequest.
const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// DigestRequest is the body of POST /api/v1/digest/json.
type DigestRequest struct {
	Data     *string `json:"data" validate:"required"`
	Encoding string  `json:"encoding,omitempty" validate:"omitempty,oneof=utf8 latin1 hex base64"`
}

// DigestResponse is returned by both digest endpoints.
type DigestResponse = hashing.Result

// VectorsResponse is returned by GET /api/v1/vectors.
type VectorsResponse struct {
	Passed  bool             `json:"passed"`
	Results []selfcheck.Case `json:"results"`
}

// StatusResponse contains version information and the active configuration fingerprint.
type StatusResponse struct {
	Version           VersionInfo `json:"version"`
	ConfigPath        string      `json:"config_path,omitempty"`
	ConfigFingerprint string      `json:"config_fingerprint"`
	Vectors           int         `json:"vectors"`
}

// VersionInfo contains version details.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult represents a single check result.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}
