package model

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSubject is used when a message file or prompt leaves the subject empty.
const DefaultSubject = "Farewell Message Delivery"

// MessageInfo is the per-run delivery request: who to mail, which content
// hash to embed, and what to say.
type MessageInfo struct {
	// Recipients is the ordered list of destination addresses. At least
	// one is required before a run may proceed.
	Recipients []string

	// ContentHash is the payload digest from the contract, normalized to
	// a 0x-prefixed hex string.
	ContentHash string

	// Body is the decrypted farewell message text.
	Body string

	// Subject is the mail subject, defaulting to DefaultSubject.
	Subject string
}

// NormalizeContentHash trims surrounding whitespace and ensures the hash
// carries a 0x prefix. Empty input stays empty.
func NormalizeContentHash(hash string) string {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return hash
	}
	if !strings.HasPrefix(hash, "0x") {
		hash = "0x" + hash
	}
	return hash
}

// SplitRecipients splits a comma-separated address list, trimming each
// entry and dropping blanks.
func SplitRecipients(s string) []string {
	var recipients []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}

// LoadMessageFile reads a message-data JSON file exported from the Farewell
// UI. The expected shape is:
//
//	{
//	  "recipients": ["a@example.com"] or "a@example.com, b@example.com",
//	  "contentHash": "0x1234...",          (or "content_hash")
//	  "message": "The farewell message",
//	  "subject": "Optional custom subject"
//	}
//
// Missing recipients, hash, or message is a load error; nothing has been
// sent or written when it is returned.
func LoadMessageFile(path string) (*MessageInfo, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading message file %s: %w", path, err)
	}

	recipients, err := recipientsFromValue(v.Get("recipients"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Viper keys are case-insensitive, so "contenthash" also matches the
	// camelCase "contentHash" spelling.
	hash := v.GetString("contenthash")
	if hash == "" {
		hash = v.GetString("content_hash")
	}
	if hash == "" {
		return nil, fmt.Errorf("%s: missing 'contentHash' field", path)
	}

	if !v.IsSet("message") {
		return nil, fmt.Errorf("%s: missing 'message' field", path)
	}

	subject := v.GetString("subject")
	if subject == "" {
		subject = DefaultSubject
	}

	return &MessageInfo{
		Recipients:  recipients,
		ContentHash: NormalizeContentHash(hash),
		Body:        v.GetString("message"),
		Subject:     subject,
	}, nil
}

// recipientsFromValue accepts the two supported shapes of the recipients
// field: a comma-separated string or an array of strings.
func recipientsFromValue(raw any) ([]string, error) {
	var recipients []string

	switch value := raw.(type) {
	case nil:
		return nil, fmt.Errorf("missing 'recipients' field")
	case string:
		recipients = SplitRecipients(value)
	case []string:
		for _, r := range value {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
	case []any:
		for _, item := range value {
			r, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("'recipients' entries must be strings, got %T", item)
			}
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
	default:
		return nil, fmt.Errorf("'recipients' must be a string or an array of strings, got %T", raw)
	}

	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients specified")
	}
	return recipients, nil
}
