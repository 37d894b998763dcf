package export

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathrjj/member-admin-tui/models"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var sample = []models.Member{
	{ID: 1, Name: "Ann", Email: "ann@example.com", Role: "admin"},
	{ID: 3, Name: "Cy", Email: "cy@example.com", Role: "member"},
}

func decrypt(t *testing.T, armored string, id age.Identity) string {
	t.Helper()
	r, err := age.Decrypt(armor.NewReader(strings.NewReader(armored)), id)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestEncodeJSON(t *testing.T) {
	text, err := EncodeJSON(sample)
	require.NoError(t, err)

	var back []models.Member
	require.NoError(t, json.Unmarshal([]byte(text), &back))
	assert.Equal(t, sample, back)

	_, err = EncodeJSON(nil)
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestParseRecipients(t *testing.T) {
	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	recs, err := ParseRecipients([]string{"", "  " + id.Recipient().String() + "  "})
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	_, err = ParseRecipients(nil)
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = ParseRecipients([]string{"age1notakey"})
	require.Error(t, err)

	_, err = ParseRecipients([]string{"ssh-ed25519 garbage"})
	require.Error(t, err)
}

func TestEncryptRoundTrip(t *testing.T) {
	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	armored, err := Encrypt("hello", id.Recipient())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(armored, armor.Header))
	assert.Equal(t, "hello", decrypt(t, armored, id))

	_, err = Encrypt("hello")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestExporterCopyJSON(t *testing.T) {
	cb := &fakeClipboard{}
	e := &Exporter{Clipboard: cb}

	text, err := e.CopyJSON(sample)
	require.NoError(t, err)
	assert.Equal(t, text, cb.text)
	assert.Contains(t, cb.text, `"email": "cy@example.com"`)

	_, err = e.CopyJSON(nil)
	assert.ErrorIs(t, err, ErrNothingSelected)

	cb.err = errors.New("no clipboard")
	_, err = e.CopyJSON(sample)
	require.Error(t, err)
}

func TestExporterCopyEncrypted(t *testing.T) {
	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	cb := &fakeClipboard{}
	e := &Exporter{Clipboard: cb, Recipients: []string{id.Recipient().String()}}

	_, err = e.CopyEncrypted(sample)
	require.NoError(t, err)

	var back []models.Member
	require.NoError(t, json.Unmarshal([]byte(decrypt(t, cb.text, id)), &back))
	assert.Equal(t, sample, back)

	e.Recipients = nil
	_, err = e.CopyEncrypted(sample)
	assert.ErrorIs(t, err, ErrNoRecipients)
}
