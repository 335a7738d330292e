package api

import (
	"net/http"

	"github.com/princess-rosella/spu-md5/src/internal/selfcheck"
)

// GetStatus returns version information and the configuration fingerprint.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	fingerprint, err := h.cfg.Fingerprint()
	if err != nil {
		WriteInternalError(w, "Failed to fingerprint configuration: "+err.Error())
		return
	}

	writeJSONData(w, StatusResponse{
		Version:           h.version,
		ConfigPath:        h.cfg.GetConfigPath(),
		ConfigFingerprint: fingerprint,
		Vectors:           len(h.cfg.Vectors),
	})
}

// GetVectors runs the configured known-answer vectors.
// GET /api/v1/vectors
func (h *Handler) GetVectors(w http.ResponseWriter, r *http.Request) {
	report := selfcheck.RunVectors(h.cfg.Vectors)
	writeJSONData(w, VectorsResponse{
		Passed:  report.Passed,
		Results: report.Cases,
	})
}

// CheckHealth validates the configuration and runs the boundary self-check.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}

	if err := h.cfg.ValidateConfig(); err != nil {
		response.Healthy = false
		response.Checks["config_validation"] = CheckResult{
			Passed:  false,
			Message: "Configuration validation failed: " + err.Error(),
		}
	} else {
		response.Checks["config_validation"] = CheckResult{
			Passed:  true,
			Message: "Configuration is valid",
		}
	}

	if err := selfcheck.RunBoundaries().Err(); err != nil {
		response.Healthy = false
		response.Checks["digest_boundaries"] = CheckResult{
			Passed:  false,
			Message: err.Error(),
		}
	} else {
		response.Checks["digest_boundaries"] = CheckResult{
			Passed:  true,
			Message: "Block boundary digests agree",
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
