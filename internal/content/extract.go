package content

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/metrics"
)

// base64Marker marks inline encoded blobs which are never stored
const base64Marker = "base64"

// document is a decoded JSON object with numbers kept as json.Number
type document map[string]interface{}

// extractor applies the field rules of one shape to one content id
type extractor struct {
	ctx       context.Context
	shape     Shape
	contentID string
	metrics   *metrics.Metrics
}

// str returns the field when it is a non empty JSON string without an inline
// base64 payload
func (e *extractor) str(doc document, field string) *string {
	v, ok := doc[field]
	if !ok || v == nil {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return nil
	}

	if strings.Contains(s, base64Marker) {
		logger.WarnCtx(e.ctx, "skipping base64 encoded field",
			zap.String("shape", string(e.shape)),
			zap.String("contentID", e.contentID),
			zap.String("field", field))
		e.metrics.IncRejectedField(string(e.shape), field)
		return nil
	}

	if s == "" {
		return nil
	}

	return &s
}

// number returns the field as a decimal integer string, "0" when it is absent
// or not an integer
func (e *extractor) number(doc document, field string) string {
	var raw string
	switch v := doc[field].(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	default:
		return "0"
	}

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		// Integral floats such as 5.0 or 1e3
		f, _, err := big.ParseFloat(raw, 10, 256, big.ToNearestEven)
		if err != nil || !f.IsInt() {
			return "0"
		}
		n, _ = f.Int(nil)
	}

	return n.String()
}

// decodeObject parses raw as a JSON object, ok is false for anything else
func decodeObject(raw []byte) (document, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// Trailing data after the first value is not a single document
	if dec.More() {
		return nil, false
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}

	return document(obj), true
}
