//go:build unit

package chunkmeta_test

import (
	"strings"
	"testing"

	"slotgate/internal/pkg/chunkmeta"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Services    []string `json:"services"`
	Description string   `json:"description"`
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// Big enough to need several chunks
	payload := samplePayload{
		Name:        "山田 太郎",
		Email:       "taro@example.com",
		Services:    []string{"cut", "color", "treatment"},
		Description: strings.Repeat("long free text ", 200),
	}

	md, err := chunkmeta.Encode("appointment", payload)
	require.NoError(t, err)
	assert.Equal(t, "appointment", chunkmeta.Kind(md))
	require.Greater(t, len(md), 2, "payload should span multiple chunks")

	for k, v := range md {
		assert.LessOrEqual(t, len(v), chunkmeta.ChunkSize, "chunk %s over size cap", k)
	}

	var decoded samplePayload
	require.NoError(t, chunkmeta.Decode(md, &decoded))

	if diff := cmp.Diff(payload, decoded); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_NumericChunkOrder(t *testing.T) {
	// 12 chunks: lexicographic order would read data_10 before data_2
	payload := samplePayload{
		Description: strings.Repeat("0123456789", chunkmeta.ChunkSize*12/10),
	}

	md, err := chunkmeta.Encode("appointment", payload)
	require.NoError(t, err)
	require.Contains(t, md, "data_11")

	var decoded samplePayload
	require.NoError(t, chunkmeta.Decode(md, &decoded))
	assert.Equal(t, payload.Description, decoded.Description)
}

func TestDecode_MissingChunkFailsLoudly(t *testing.T) {
	payload := samplePayload{Description: strings.Repeat("x", chunkmeta.ChunkSize*5)}

	md, err := chunkmeta.Encode("appointment", payload)
	require.NoError(t, err)
	require.Contains(t, md, "data_3")
	delete(md, "data_3")

	var decoded samplePayload
	err = chunkmeta.Decode(md, &decoded)
	require.Error(t, err)
	assert.ErrorIs(t, err, chunkmeta.ErrMissingChunk)
}

func TestDecode_LegacySingleKeyFallback(t *testing.T) {
	md := map[string]string{
		"type":    "appointment",
		"payload": `{"name":"Jane","email":"jane@example.com"}`,
	}

	var decoded samplePayload
	require.NoError(t, chunkmeta.Decode(md, &decoded))
	assert.Equal(t, "Jane", decoded.Name)
	assert.Equal(t, "jane@example.com", decoded.Email)
}

func TestDecode_ChunksWinOverLegacyKey(t *testing.T) {
	md, err := chunkmeta.Encode("appointment", samplePayload{Name: "chunked"})
	require.NoError(t, err)
	md["payload"] = `{"name":"legacy"}`

	var decoded samplePayload
	require.NoError(t, chunkmeta.Decode(md, &decoded))
	assert.Equal(t, "chunked", decoded.Name)
}

func TestDecode_EmptyMetadata(t *testing.T) {
	var decoded samplePayload
	err := chunkmeta.Decode(map[string]string{"type": "appointment"}, &decoded)
	assert.ErrorIs(t, err, chunkmeta.ErrEmptyMetadata)
}

func TestDecode_CorruptJSON(t *testing.T) {
	md := map[string]string{"type": "appointment", "data_0": `{"name":`}

	var decoded samplePayload
	err := chunkmeta.Decode(md, &decoded)
	assert.ErrorIs(t, err, chunkmeta.ErrBadPayload)
}
