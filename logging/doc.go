// Package logging builds the structured logger used by the command.
//
// Records are written as slog text lines to the given writer and, when a
// log file is configured, appended to that file as well:
//
//	logger, closeLog, err := logging.New(os.Stdout, "info", "fluxreport.log")
//	defer closeLog()
package logging
