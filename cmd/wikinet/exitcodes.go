package main

// Exit codes shared by all wikinet commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing workspace, invalid paths)
	ExitDataError   = 3 // Data error (malformed CSV, validation failure)
	ExitFetchError  = 4 // Wikipedia fetch error (network, rate limit)
)
