package api

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/hashing"
	"github.com/princess-rosella/spu-md5/src/internal/log"
	"github.com/princess-rosella/spu-md5/src/md5"
)

// Digest hashes the raw request body. A Content-Encoding of gzip or zstd is
// decoded first; both the encoded body and the decoded stream are limited to
// server.max_body_bytes.
// POST /api/v1/digest
func (h *Handler) Digest(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.Server.MaxBodyBytes
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	codec := r.Header.Get("Content-Encoding")
	if codec == "identity" {
		codec = hashing.CodecNone
	}

	reader, err := hashing.NewDecodingReader(body, codec)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeUsage {
			WriteInvalidRequest(w, fmt.Sprintf("Unsupported Content-Encoding: %s", codec))
			return
		}
		h.writeReadError(w, err, limit)
		return
	}
	defer reader.Close()

	// The decoded stream is held to the same limit as the request body.
	var decoded io.ReadCloser = reader
	if codec != hashing.CodecNone {
		decoded = http.MaxBytesReader(w, reader, limit)
	}

	res, err := hashing.HashReader(decoded, h.cfg.General.ChunkSize)
	if err != nil {
		h.writeReadError(w, err, limit)
		return
	}

	h.metrics.observe(SourceRaw, res.Size)
	writeJSONData(w, DigestResponse(res))
}

func (h *Handler) writeReadError(w http.ResponseWriter, err error, limit int64) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		WritePayloadTooLarge(w, limit)
		return
	}
	log.Debugf("Failed to read request body: %v", err)
	WriteInvalidRequest(w, "Failed to read request body: "+err.Error())
}

// DigestJSON hashes the data field of a JSON request after decoding it with
// the requested encoding.
// POST /api/v1/digest/json
func (h *Handler) DigestJSON(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.Server.MaxBodyBytes
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		h.writeReadError(w, err, limit)
		return
	}

	var req DigestRequest
	if err := decodeJSON(bytes.NewReader(body), &req); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		WriteValidationError(w, "Invalid digest request", validationDetails(err))
		return
	}

	data, err := decodeData(*req.Data, req.Encoding)
	if err != nil {
		WriteInvalidRequest(w, err.Error())
		return
	}

	res := DigestResponse{Checksum: md5.Process(data), Size: int64(len(data))}
	h.metrics.observe(SourceJSON, res.Size)
	writeJSONData(w, res)
}

// decodeData converts s to the message bytes. The empty encoding means utf8.
func decodeData(s, encoding string) ([]byte, error) {
	switch encoding {
	case "", EncodingUTF8:
		return []byte(s), nil
	case EncodingLatin1:
		b, err := md5.Latin1(s)
		if err != nil {
			return nil, fmt.Errorf("data is not representable as latin1: %w", err)
		}
		return b, nil
	case EncodingHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex data: %w", err)
		}
		return b, nil
	case EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
