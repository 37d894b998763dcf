// Package export turns the selected members into text for the clipboard,
// optionally age-encrypted to a set of recipients.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"filippo.io/age"
	"filippo.io/age/agessh"
	"filippo.io/age/armor"
	"github.com/atotto/clipboard"

	"github.com/deathrjj/member-admin-tui/models"
)

// ErrNothingSelected is returned when an export is requested with no rows.
var ErrNothingSelected = errors.New("no members selected")

// ErrNoRecipients is returned when encryption is requested without recipients.
var ErrNoRecipients = errors.New("no export recipients configured")

// Clipboard is the subset of the system clipboard the export needs.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// EncodeJSON renders members as an indented JSON array.
func EncodeJSON(members []models.Member) (string, error) {
	if len(members) == 0 {
		return "", ErrNothingSelected
	}
	data, err := json.MarshalIndent(members, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding members: %w", err)
	}
	return string(data), nil
}

// ParseRecipients accepts age X25519 recipients ("age1...") and SSH public keys.
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	var recipients []age.Recipient
	for _, keyStr := range keys {
		keyStr = strings.TrimSpace(keyStr)
		if keyStr == "" {
			continue
		}
		var (
			rec age.Recipient
			err error
		)
		if strings.HasPrefix(keyStr, "age1") {
			rec, err = age.ParseX25519Recipient(keyStr)
		} else {
			// Use agessh.ParseRecipient to parse an SSH key as an age recipient
			rec, err = agessh.ParseRecipient(keyStr)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse recipient %q: %w", abbreviate(keyStr), err)
		}
		recipients = append(recipients, rec)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	return recipients, nil
}

// Encrypt encrypts plaintext to every recipient and returns ASCII armor.
func Encrypt(plaintext string, recipients ...age.Recipient) (string, error) {
	if len(recipients) == 0 {
		return "", ErrNoRecipients
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		return "", err
	}

	if _, err := w.Write([]byte(plaintext)); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	if err := armorWriter.Close(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Exporter copies member exports to a clipboard.
type Exporter struct {
	Clipboard  Clipboard
	Recipients []string
}

// CopyJSON copies members as JSON and returns the copied text.
func (e *Exporter) CopyJSON(members []models.Member) (string, error) {
	text, err := EncodeJSON(members)
	if err != nil {
		return "", err
	}
	if err := e.Clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("writing clipboard: %w", err)
	}
	return text, nil
}

// CopyEncrypted copies members as age-armored JSON and returns the copied text.
func (e *Exporter) CopyEncrypted(members []models.Member) (string, error) {
	plaintext, err := EncodeJSON(members)
	if err != nil {
		return "", err
	}
	recipients, err := ParseRecipients(e.Recipients)
	if err != nil {
		return "", err
	}
	text, err := Encrypt(plaintext, recipients...)
	if err != nil {
		return "", fmt.Errorf("encrypting export: %w", err)
	}
	if err := e.Clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("writing clipboard: %w", err)
	}
	return text, nil
}

func abbreviate(s string) string {
	if len(s) <= 16 {
		return s
	}
	return s[:16] + "..."
}
