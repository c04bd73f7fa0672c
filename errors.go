package pairtree

import "errors"

// Configuration errors
var (
	// ErrConfigValidation wraps every problem found while validating a configuration file.
	ErrConfigValidation = errors.New("config validation error")
	// ErrNoGrammar is returned when neither the command line nor the configuration names a grammar.
	ErrNoGrammar = errors.New("no grammar specified")
)
