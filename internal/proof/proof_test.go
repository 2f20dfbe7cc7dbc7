package proof

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestBuildShape(t *testing.T) {
	rec := Build([]byte("raw"), "recipient@test.com", "0x1234567890abcdef")

	assert.Equal(t, [2]string{"0x0", "0x0"}, rec.PA)
	assert.Equal(t, [2][2]string{{"0x0", "0x0"}, {"0x0", "0x0"}}, rec.PB)
	assert.Equal(t, [2]string{"0x0", "0x0"}, rec.PC)
	assert.Equal(t, "0x"+strings.Repeat("0", 64), rec.PublicSignals[1])
}

func TestBuildContentHashPassthrough(t *testing.T) {
	for _, hash := range []string{"0x1234", "abc", "0xABCDEF", " spaced "} {
		rec := Build(nil, "recipient@test.com", hash)
		assert.Equal(t, hash, rec.PublicSignals[2], "content hash must pass through verbatim")
	}
}

func TestBuildRecipientHashFormat(t *testing.T) {
	rec := Build(nil, "recipient@test.com", "0x1234")

	recipientHash := rec.PublicSignals[0]
	require.True(t, strings.HasPrefix(recipientHash, "0x"))
	assert.Len(t, recipientHash, 66, "0x plus 64 hex characters")

	_, err := hex.DecodeString(recipientHash[2:])
	assert.NoError(t, err)
}

func TestBuildNormalizesRecipient(t *testing.T) {
	a := Build(nil, "Test@Example.COM  ", "0x01")
	b := Build(nil, "test@example.com", "0x01")

	assert.Equal(t, a.PublicSignals[0], b.PublicSignals[0],
		"recipients differing only in case and whitespace must hash identically")
}

func TestBuildDistinctRecipients(t *testing.T) {
	a := Build(nil, "alice@example.com", "0x01")
	b := Build(nil, "bob@example.com", "0x01")

	assert.NotEqual(t, a.PublicSignals[0], b.PublicSignals[0])
}

func TestRecipientHashMatchesSHA3(t *testing.T) {
	digest := sha3.Sum256([]byte("recipient@test.com"))
	want := "0x" + hex.EncodeToString(digest[:])

	assert.Equal(t, want, RecipientHash("  Recipient@Test.COM "))
}

func TestRecordJSONKeys(t *testing.T) {
	rec := Build(nil, "recipient@test.com", "0x1234")

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"pA", "pB", "pC", "publicSignals"} {
		assert.Contains(t, decoded, key)
	}
	assert.Len(t, decoded, 4)

	signals, ok := decoded["publicSignals"].([]any)
	require.True(t, ok)
	assert.Len(t, signals, 3)
}
