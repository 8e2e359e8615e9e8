package journal

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/fpadd/internal/fixed"
)

// DomainCall separates call hashes from any other hash in the system.
// Version suffix enables future algorithm migration.
const DomainCall = "fpadd/call/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CallID computes the content-addressed ID for a call.
// The ID covers the run, the seq and the inputs; the outputs are a function
// of those and the run's policy, so they are left out.
func CallID(runID string, seq int64, a, b fixed.Amount) (string, error) {
	canonical, err := marshalCanonical(map[string]any{
		"a":      a.Units(),
		"b":      b.Units(),
		"run_id": norm.NFC.String(runID),
		"seq":    seq,
	})
	if err != nil {
		return "", fmt.Errorf("CallID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCall, canonical), nil
}

// marshalCanonical encodes a flat map of strings and integers with sorted
// keys and no HTML escaping. Keys are ASCII, so byte order matches
// UTF-16 order.
func marshalCanonical(m map[string]any) ([]byte, error) {
	for k, v := range m {
		switch v.(type) {
		case string, int64:
		default:
			return nil, fmt.Errorf("key %q: unsupported type %T", k, v)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
