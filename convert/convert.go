// Package convert turns the service account key downloaded from the Firebase
// console into the .env file the backend reads.
package convert

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	units "github.com/docker/go-units"
	"github.com/golang/glog"

	"github.com/jcgregorio/firebase2env/config"
	"github.com/jcgregorio/firebase2env/credential"
	"github.com/jcgregorio/firebase2env/envfile"
)

// Kind classifies why a conversion failed.
type Kind int

const (
	UNKNOWN Kind = iota
	NOT_FOUND
	PARSE_ERROR
	VALIDATION_ERROR
	IO_ERROR
)

func (k Kind) String() string {
	switch k {
	case NOT_FOUND:
		return "not-found"
	case PARSE_ERROR:
		return "parse-error"
	case VALIDATION_ERROR:
		return "validation-error"
	case IO_ERROR:
		return "io-error"
	}
	return "unknown"
}

// Error is returned by Run for every failed conversion.
type Error struct {
	Kind Kind

	// Path is the absolute path of the file involved.
	Path string

	// Missing lists the required fields that are absent or empty, only set
	// for VALIDATION_ERROR.
	Missing []string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NOT_FOUND:
		return fmt.Sprintf("%s: credentials file not found", e.Path)
	case VALIDATION_ERROR:
		return fmt.Sprintf("%s: missing required fields: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or UNKNOWN if err did not come from Run.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UNKNOWN
}

// Converter reads a credentials file and writes the matching .env file,
// reporting progress to Out.
type Converter struct {
	// Out receives the messages meant for the person running the tool.
	Out io.Writer

	// Project is the Firebase project named in the download instructions.
	Project string
}

func New(out io.Writer, project string) *Converter {
	if project == "" {
		project = config.PROJECT
	}
	return &Converter{
		Out:     out,
		Project: project,
	}
}

func abs(path string) string {
	if p, err := filepath.Abs(path); err == nil {
		return p
	}
	return path
}

// Load reads and validates the credentials file at inputPath.
func Load(inputPath string) (*credential.Record, error) {
	inputPath = abs(inputPath)
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Kind: NOT_FOUND, Path: inputPath, Err: err}
		}
		return nil, &Error{Kind: IO_ERROR, Path: inputPath, Err: err}
	}
	b, err := ioutil.ReadFile(inputPath)
	if err != nil {
		return nil, &Error{Kind: IO_ERROR, Path: inputPath, Err: err}
	}
	rec, err := credential.Parse(b)
	if err != nil {
		return nil, &Error{Kind: PARSE_ERROR, Path: inputPath, Err: err}
	}
	if missing := rec.Missing(); len(missing) > 0 {
		return nil, &Error{Kind: VALIDATION_ERROR, Path: inputPath, Missing: missing}
	}
	return rec, nil
}

// Run converts inputPath into outputPath. The output file is only written
// once the input has been fully validated. It returns the number of bytes
// written.
func (c *Converter) Run(inputPath, outputPath string) (int, error) {
	glog.V(1).Infof("Converting %q to %q", inputPath, outputPath)
	rec, err := Load(inputPath)
	if err != nil {
		return 0, err
	}
	outputPath = abs(outputPath)
	b, err := envfile.Render(rec)
	if err != nil {
		return 0, &Error{Kind: IO_ERROR, Path: outputPath, Err: err}
	}
	if err := envfile.Write(outputPath, b); err != nil {
		return 0, &Error{Kind: IO_ERROR, Path: outputPath, Err: err}
	}
	glog.V(1).Infof("Wrote %d bytes to %q", len(b), outputPath)
	return len(b), nil
}

// Convert converts inputPath into outputPath, printing the outcome to
// c.Out. It returns true on success.
func (c *Converter) Convert(inputPath, outputPath string) bool {
	n, err := c.Run(inputPath, outputPath)
	if err != nil {
		glog.V(1).Infof("Conversion failed: %s", err)
		c.reportFailure(err)
		return false
	}
	c.reportSuccess(abs(outputPath), n)
	return true
}

// Export writes the variables from inputPath to w as shell export
// statements. Failures are reported to c.Out the same way as Convert.
func (c *Converter) Export(inputPath string, w io.Writer) bool {
	rec, err := Load(inputPath)
	if err != nil {
		glog.V(1).Infof("Export failed: %s", err)
		c.reportFailure(err)
		return false
	}
	if _, err := w.Write(envfile.RenderExports(rec)); err != nil {
		glog.V(1).Infof("Failed to write exports: %s", err)
		c.printf("❌ Błąd: %s\n", err)
		return false
	}
	return true
}

func (c *Converter) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Converter) reportFailure(err error) {
	var e *Error
	if !errors.As(err, &e) {
		c.printf("❌ Błąd: %s\n", err)
		return
	}
	switch e.Kind {
	case NOT_FOUND:
		c.printf("❌ Nie znaleziono pliku %s\n", filepath.Base(e.Path))
		c.printf("   Szukam w: %s\n", e.Path)
		c.printf("\n📋 Instrukcja:\n")
		c.printf("1. Przejdź do Firebase Console: %s\n", config.CONSOLE_URL)
		c.printf("2. Wybierz projekt: %s\n", c.Project)
		c.printf("3. Settings → Service accounts\n")
		c.printf("4. Kliknij 'Generate new private key'\n")
		c.printf("5. Zapisz pobrany plik jako '%s' w katalogu %s\n", filepath.Base(e.Path), filepath.Dir(e.Path))
	case PARSE_ERROR:
		c.printf("❌ Błąd parsowania pliku JSON: %s\n", e.Err)
	case VALIDATION_ERROR:
		c.printf("❌ Brakuje wymaganych pól w pliku JSON: %s\n", strings.Join(e.Missing, ", "))
	default:
		c.printf("❌ Błąd: %s\n", e.Err)
	}
}

func (c *Converter) reportSuccess(outputPath string, n int) {
	c.printf("✅ Plik %s został utworzony pomyślnie!\n", filepath.Base(outputPath))
	c.printf("   Lokalizacja: %s (%s)\n", outputPath, units.HumanSize(float64(n)))
	c.printf("\n⚠️  WAŻNE:\n")
	c.printf("   - Plik %s zawiera wrażliwe dane\n", filepath.Base(outputPath))
	c.printf("   - Upewnij się, że %s jest w .gitignore (już jest)\n", filepath.Base(outputPath))
	c.printf("   - NIE commituj tego pliku do Git!\n")
	c.printf("\n✅ Możesz teraz uruchomić serwer Django\n")
}
