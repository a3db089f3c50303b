// Package chunkmeta serializes a booking payload into the payment provider's
// size-limited key/value metadata and reconstructs it after the webhook hop.
//
// The provider caps each metadata value, so the canonical JSON form of the
// payload is split into fixed-size chunks stored under data_0..data_N. Join
// order is recovered by parsing the integer suffix; a string sort would place
// data_10 before data_2.
package chunkmeta

import (
	"encoding/json"
	"strconv"
	"strings"

	"slotgate/internal/pkg/errs"
)

const (
	// ChunkSize stays under the provider's 500-character metadata value cap.
	ChunkSize = 450

	chunkKeyPrefix = "data_"
	kindKey        = "type"

	// legacyKey is the pre-chunking encoding: the whole payload in one value.
	// Read only when no data_* keys are present.
	legacyKey = "payload"
)

var (
	ErrMissingChunk  = errs.New("metadata chunk missing")
	ErrBadChunkKey   = errs.New("malformed metadata chunk key")
	ErrEmptyMetadata = errs.New("metadata carries no payload")
	ErrBadPayload    = errs.New("payload is not valid JSON")
)

// Encode marshals payload to canonical JSON and splits it across numbered
// metadata keys, tagging the map with the payload kind.
func Encode(kind string, payload any) (map[string]string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Wrap(err, "marshal payload")
	}

	md := make(map[string]string)
	md[kindKey] = kind

	s := string(raw)
	for i := 0; len(s) > 0; i++ {
		n := ChunkSize
		if len(s) < n {
			n = len(s)
		}
		md[chunkKeyPrefix+strconv.Itoa(i)] = s[:n]
		s = s[n:]
	}
	return md, nil
}

// Kind returns the payload discriminator, empty when absent.
func Kind(md map[string]string) string {
	return md[kindKey]
}

// Decode reassembles the canonical JSON from md and unmarshals it into dst.
// Chunks are joined in numeric suffix order; a gap in the sequence or a key
// with a non-numeric suffix fails the whole decode, so a corrupt payload can
// never surface as a partially-filled record.
func Decode(md map[string]string, dst any) error {
	chunks := make(map[int]string)
	maxIndex := -1
	for k, v := range md {
		if !strings.HasPrefix(k, chunkKeyPrefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(k, chunkKeyPrefix))
		if err != nil || idx < 0 {
			return errs.Mark(errs.Wrapf(err, "chunk key %q", k), ErrBadChunkKey)
		}
		chunks[idx] = v
		if idx > maxIndex {
			maxIndex = idx
		}
	}

	var raw string
	switch {
	case maxIndex >= 0:
		var b strings.Builder
		for i := 0; i <= maxIndex; i++ {
			chunk, ok := chunks[i]
			if !ok {
				return errs.Mark(errs.New("missing chunk "+chunkKeyPrefix+strconv.Itoa(i)), ErrMissingChunk)
			}
			b.WriteString(chunk)
		}
		raw = b.String()
	case md[legacyKey] != "":
		raw = md[legacyKey]
	default:
		return ErrEmptyMetadata
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errs.Mark(errs.Wrap(err, "unmarshal payload"), ErrBadPayload)
	}
	return nil
}
