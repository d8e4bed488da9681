package core

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

const (
	headerContentEncoding = "Content-Encoding"
	headerAcceptEncoding  = "Accept-Encoding"
	headerContentType     = "Content-Type"
	headerAccept          = "Accept"
	headerRequestID       = "Request-Id"
	headerTenantID        = "Tenant-Id"
	headerTenantTs        = "Tenant-Ts"
	headerTenantNonce     = "Tenant-Nonce"
	headerTenantSignature = "Tenant-Signature"

	encodingGzip     = "gzip"
	contentTypeProto = "application/x-protobuf"

	nonceLength   = 8
	nonceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// buildHeaders returns the full header set for one call over the compressed body.
func (h *HTTPCaller) buildHeaders(opts Options, body []byte) map[string]string {
	headers := map[string]string{
		headerContentEncoding: encodingGzip,
		headerAcceptEncoding:  encodingGzip,
		headerContentType:     contentTypeProto,
		headerAccept:          contentTypeProto,
	}
	if opts.RequestID != "" {
		headers[headerRequestID] = opts.RequestID
	} else {
		headers[headerRequestID] = h.newRequestID()
	}
	h.withAuthHeaders(headers, body)
	return headers
}

func (h *HTTPCaller) withAuthHeaders(headers map[string]string, body []byte) {
	ts := strconv.FormatInt(h.now().Unix(), 10)
	nonce := h.nonce()

	headers[headerTenantID] = h.sdkCtx.TenantID()
	headers[headerTenantTs] = ts
	headers[headerTenantNonce] = nonce
	headers[headerTenantSignature] = Signature(h.sdkCtx.Token(), body, h.sdkCtx.TenantID(), ts, nonce)
}

// Signature hashes token, body, tenantID, ts and nonce in exactly that order
// and returns the lowercase hex SHA-256 digest. The server recomputes the same
// concatenation, so the order must not change.
func Signature(token string, body []byte, tenantID, ts, nonce string) string {
	sum := sha256.New()
	sum.Write([]byte(token))
	sum.Write(body)
	sum.Write([]byte(tenantID))
	sum.Write([]byte(ts))
	sum.Write([]byte(nonce))
	return hex.EncodeToString(sum.Sum(nil))
}

// randomNonce samples nonceLength distinct characters from nonceAlphabet.
func randomNonce() string {
	buf := []byte(nonceAlphabet)
	for i := 0; i < nonceLength; i++ {
		j := i + rand.Intn(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf[:nonceLength])
}

// timeOrderedID returns a UUID v1, falling back to v4 if the node id or clock
// sequence cannot be obtained.
func timeOrderedID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
