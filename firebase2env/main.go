// Converts the service account key downloaded from the Firebase console into
// the .env file read by the Django backend.
//
// Run it from the backend directory, next to firebase-credentials.json:
//
//    go run ./firebase2env
//
// or set the variables in the current shell without writing a file:
//
//    eval "$(go run ./firebase2env -export)"
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/jcgregorio/firebase2env/config"
	"github.com/jcgregorio/firebase2env/convert"
)

var (
	configFile = flag.String("config", config.CONFIG_FILENAME, "Optional YAML config file, relative to the working directory.")
	dir        = flag.String("dir", "", "Directory containing the credentials file. Overrides the config file.")
	input      = flag.String("input", "", "Name of the credentials file. Overrides the config file.")
	output     = flag.String("output", "", "Name of the .env file to write. Overrides the config file.")
	export     = flag.Bool("export", false, "Print export statements to stdout instead of writing the .env file.")
)

// Log to stderr unless -logtostderr=false is given, glog otherwise creates
// log files in os.TempDir on every run.
func init() {
	if err := flag.Set("logtostderr", "true"); err != nil {
		panic(err)
	}
}

type options struct {
	configFile     string
	configRequired bool
	dir            string
	input          string
	output         string
	export         bool
}

// run returns the process exit status.
func run(opts options, stdout, stderr io.Writer) int {
	cfg, err := config.Load(opts.configFile, opts.configRequired)
	if err != nil {
		fmt.Fprintf(stderr, "firebase2env: %s\n", err)
		return 2
	}
	if opts.dir != "" {
		cfg.Dir = opts.dir
	}
	if opts.input != "" {
		cfg.Input = opts.input
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}

	var ok bool
	if opts.export {
		// Keep diagnostics out of the shell's command substitution.
		ok = convert.New(stderr, cfg.Project).Export(cfg.InputPath(), stdout)
	} else {
		c := convert.New(stdout, cfg.Project)
		ok = c.Convert(cfg.InputPath(), cfg.OutputPath())
	}
	if !ok {
		return 1
	}
	return 0
}

func main() {
	flag.Parse()

	configRequired := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configRequired = true
		}
	})
	status := run(options{
		configFile:     *configFile,
		configRequired: configRequired,
		dir:            *dir,
		input:          *input,
		output:         *output,
		export:         *export,
	}, os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(status)
}
