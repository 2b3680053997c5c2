package autobind

import "sort"

// Logger receives scheduler and binder diagnostics.
// *utils.DiagnosticSystem satisfies it.
type Logger interface {
	Warn(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// NopLogger discards everything
var NopLogger Logger = nopLogger{}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
