package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/pkg/metrics"
)

// requiredFields must be present in a decoded token.
var requiredFields = []string{"dayCount", "participant", "evaluations"}

// Encode serialises s as compact JSON and then as unpadded base64url.
func Encode(s Snapshot) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")
	metrics.RecordShareEncoded()
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Every failure wraps ErrInvalidToken and no
// partial snapshot is returned.
func Decode(token string) (Snapshot, error) {
	s, reason, err := decode(token)
	if err != nil {
		metrics.RecordShareDecodeFailure(reason)
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	metrics.RecordShareDecoded()
	return s, nil
}

func decode(token string) (Snapshot, string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Snapshot{}, reasonEmpty, fmt.Errorf("empty token")
	}
	// Tolerate padding and the standard alphabet from older links.
	token = strings.TrimRight(token, "=")
	token = strings.NewReplacer("+", "-", "/", "_").Replace(token)
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Snapshot{}, reasonBase64, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Snapshot{}, reasonJSON, err
	}
	for _, f := range requiredFields {
		v, ok := fields[f]
		if !ok || string(v) == "null" {
			return Snapshot{}, reasonMissing, fmt.Errorf("missing %s", f)
		}
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, reasonJSON, err
	}
	if s.DayCount < 1 {
		return Snapshot{}, reasonValue, fmt.Errorf("day count %d", s.DayCount)
	}
	if s.Evaluations == nil {
		s.Evaluations = []model.DailyEvaluation{}
	}
	model.NormalizeEvaluations(s.Evaluations)
	return s, "", nil
}

// Link builds the public report URL for token.
func Link(origin, token string) string {
	return strings.TrimRight(origin, "/") + "/report?d=" + token
}
