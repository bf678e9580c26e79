// Package envfile renders a service account key as a .env file that the
// Django backend loads its Firebase settings from.
package envfile

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"strings"
	"text/template"

	"github.com/jcgregorio/firebase2env/credential"
)

// Names of the variables written, in file order.
const (
	PRIVATE_KEY_ID  = "FIREBASE_PRIVATE_KEY_ID"
	PRIVATE_KEY     = "FIREBASE_PRIVATE_KEY"
	CLIENT_EMAIL    = "FIREBASE_CLIENT_EMAIL"
	CLIENT_ID       = "FIREBASE_CLIENT_ID"
	CLIENT_CERT_URL = "FIREBASE_CLIENT_CERT_URL"
)

var (
	envTemplate = template.Must(template.New("env").Parse(`# Firebase Configuration
# Wygenerowane automatycznie z firebase-credentials.json
# UWAGA: Ten plik zawiera wrażliwe dane - NIE commituj go do Git!

FIREBASE_PRIVATE_KEY_ID={{ .PrivateKeyID }}
FIREBASE_PRIVATE_KEY="{{ .PrivateKey }}"
FIREBASE_CLIENT_EMAIL={{ .ClientEmail }}
FIREBASE_CLIENT_ID={{ .ClientID }}
FIREBASE_CLIENT_CERT_URL={{ .ClientX509CertURL }}

# Django Secret Key (opcjonalne - domyślnie używa insecure key dla development)
# SECRET_KEY=your-secret-key-here
`))
)

// EscapeNewlines replaces every raw newline in s with the two characters
// backslash and 'n'. Strings without a raw newline are returned unchanged,
// so text that is already escaped passes through as is.
func EscapeNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.Replace(s, "\n", `\n`, -1)
}

func escaped(rec *credential.Record) *credential.Record {
	ret := *rec
	ret.PrivateKey = EscapeNewlines(rec.PrivateKey)
	return &ret
}

// Render returns the contents of the .env file for rec.
func Render(rec *credential.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := envTemplate.Execute(&buf, escaped(rec)); err != nil {
		return nil, fmt.Errorf("Failed to render env file: %w", err)
	}
	return buf.Bytes(), nil
}

// shellQuote wraps s in single quotes so the shell takes it literally.
func shellQuote(s string) string {
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}

// RenderExports returns the variables as shell export statements, suitable
// for
//
//    eval "$(firebase2env -export)"
//
// Values are single quoted, so the private key keeps its escaped newlines
// and nothing in it is expanded by the shell.
func RenderExports(rec *credential.Record) []byte {
	e := escaped(rec)
	var buf bytes.Buffer
	for _, kv := range [][2]string{
		{PRIVATE_KEY_ID, e.PrivateKeyID},
		{PRIVATE_KEY, e.PrivateKey},
		{CLIENT_EMAIL, e.ClientEmail},
		{CLIENT_ID, e.ClientID},
		{CLIENT_CERT_URL, e.ClientX509CertURL},
	} {
		fmt.Fprintf(&buf, "export %s=%s\n", kv[0], shellQuote(kv[1]))
	}
	return buf.Bytes()
}

// Write writes b to filename, replacing any previous contents. A new file is
// only readable by its owner.
func Write(filename string, b []byte) error {
	if err := ioutil.WriteFile(filename, b, 0600); err != nil {
		return fmt.Errorf("Failed to write %q: %w", filename, err)
	}
	return nil
}
