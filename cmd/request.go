package cmd

import (
	"github.com/spf13/pflag"

	"github.com/oshokin/reqrelay/internal/app"
)

// Flag names of the request-describing commands.
const (
	flagMethod = "method"
	flagHeader = "header"
	flagData   = "data"
	flagFile   = "file"
)

// addRequestFlags registers the flags that describe a request.
func addRequestFlags(flags *pflag.FlagSet) {
	flags.StringP(
		flagMethod,
		"X",
		"",
		"HTTP method, case-sensitive (default GET, or POST when --data is given).")

	flags.StringArrayP(
		flagHeader,
		"H",
		nil,
		`request header as "Name: Value", repeatable.`)

	flags.StringP(
		flagData,
		"d",
		"",
		"request body; it is validated but not sent.")

	flags.StringP(
		flagFile,
		"f",
		"",
		"request descriptor JSON file, '-' for standard input; overrides every other request flag.")
}

// readRequestInput collects the request flags and the optional URL argument.
func readRequestInput(flags *pflag.FlagSet, args []string) app.RequestInput {
	var input app.RequestInput

	if len(args) > 0 {
		input.URL = args[0]
	}

	input.Method, _ = flags.GetString(flagMethod)
	input.Headers, _ = flags.GetStringArray(flagHeader)
	input.Data, _ = flags.GetString(flagData)
	input.File, _ = flags.GetString(flagFile)

	return input
}
