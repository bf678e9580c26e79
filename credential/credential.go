// Package credential reads the fields of a Firebase service account key that
// the backend needs from its JSON representation.
package credential

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON keys of the required fields, in the order they are reported.
const (
	PRIVATE_KEY_ID       = "private_key_id"
	PRIVATE_KEY          = "private_key"
	CLIENT_EMAIL         = "client_email"
	CLIENT_ID            = "client_id"
	CLIENT_X509_CERT_URL = "client_x509_cert_url"
)

var REQUIRED_FIELDS = []string{
	PRIVATE_KEY_ID,
	PRIVATE_KEY,
	CLIENT_EMAIL,
	CLIENT_ID,
	CLIENT_X509_CERT_URL,
}

// Record holds the fields of a service account key. All other keys in the
// JSON file are ignored.
type Record struct {
	PrivateKeyID      string
	PrivateKey        string
	ClientEmail       string
	ClientID          string
	ClientX509CertURL string
}

// Fields is a parsed JSON object that gives typed access to its values.
type Fields map[string]json.RawMessage

// String returns the value of key and true if key is present and holds a
// JSON string. Absent keys, nulls and non-string values return "", false.
func (f Fields) String(key string) (string, bool) {
	raw, ok := f[key]
	// null unmarshals into a string without error.
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ParseFields parses b as a JSON object.
func ParseFields(b []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return f, nil
}

// Parse parses the JSON representation of a service account key. It only
// fails if b is not a JSON object; use Missing to check required fields.
func Parse(b []byte) (*Record, error) {
	f, err := ParseFields(b)
	if err != nil {
		return nil, err
	}
	return FromFields(f), nil
}

func FromFields(f Fields) *Record {
	get := func(key string) string {
		s, _ := f.String(key)
		return s
	}
	return &Record{
		PrivateKeyID:      get(PRIVATE_KEY_ID),
		PrivateKey:        get(PRIVATE_KEY),
		ClientEmail:       get(CLIENT_EMAIL),
		ClientID:          get(CLIENT_ID),
		ClientX509CertURL: get(CLIENT_X509_CERT_URL),
	}
}

// Value returns the field value for the given JSON key.
func (r *Record) Value(key string) string {
	switch key {
	case PRIVATE_KEY_ID:
		return r.PrivateKeyID
	case PRIVATE_KEY:
		return r.PrivateKey
	case CLIENT_EMAIL:
		return r.ClientEmail
	case CLIENT_ID:
		return r.ClientID
	case CLIENT_X509_CERT_URL:
		return r.ClientX509CertURL
	}
	return ""
}

// Missing returns the JSON keys of the required fields that are empty, in
// REQUIRED_FIELDS order.
func (r *Record) Missing() []string {
	ret := []string{}
	for _, key := range REQUIRED_FIELDS {
		if r.Value(key) == "" {
			ret = append(ret, key)
		}
	}
	return ret
}
