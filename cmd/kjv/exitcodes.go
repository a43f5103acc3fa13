package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config, bad paths)
	ExitDataError   = 3 // Data error (malformed document, validation failure)
	ExitNotFound    = 4 // Hard lookup failure (book or preset target missing)
	ExitIndexError  = 5 // Search index missing or stale
)
