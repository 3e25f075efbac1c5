package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Version of the sslcheck binary
const Version = "0.1.0"

type optsGeneral struct {
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func newParser() *flags.Parser {
	parser := flags.NewParser(nil, flags.HelpFlag|flags.PassDoubleDash)
	parser.AddCommand("assess", "Assess a host's TLS configuration", docAssess, &optsAssess{})
	parser.AddCommand("version", "Print the version", docVersion, &optsVersion{})
	return parser
}

// exitCode reports err where needed and returns the process exit code.
// A failed assessment has already printed its description.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if err == errAssessFailed {
		return 1
	}
	if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagsErr.Message)
		return 0
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func main() {
	_, err := newParser().Parse()
	os.Exit(exitCode(err))
}
