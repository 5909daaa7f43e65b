package logging

import "fmt"

// ModLogger is the diagnostic logger handed to a single mod through its
// Initializer (spec §6.4). It prefixes every line with the declaring mod's
// id so interleaved mod output stays attributable in the shared log file.
type ModLogger struct {
	modID string
}

// NewModLogger returns a logger that tags every line with modID.
func NewModLogger(modID string) *ModLogger {
	return &ModLogger{modID: modID}
}

func (l *ModLogger) prefix(format string) string {
	return fmt.Sprintf("[%s] %s", l.modID, format)
}

func (l *ModLogger) Info(v ...interface{})  { Info(append([]interface{}{"[" + l.modID + "]"}, v...)...) }
func (l *ModLogger) Warn(v ...interface{})  { Warn(append([]interface{}{"[" + l.modID + "]"}, v...)...) }
func (l *ModLogger) Error(v ...interface{}) { Error(append([]interface{}{"[" + l.modID + "]"}, v...)...) }
func (l *ModLogger) Debug(v ...interface{}) { Debug(append([]interface{}{"[" + l.modID + "]"}, v...)...) }

func (l *ModLogger) Infof(format string, v ...interface{})  { Infof(l.prefix(format), v...) }
func (l *ModLogger) Warnf(format string, v ...interface{})  { Warnf(l.prefix(format), v...) }
func (l *ModLogger) Errorf(format string, v ...interface{}) { Errorf(l.prefix(format), v...) }
func (l *ModLogger) Debugf(format string, v ...interface{}) { Debugf(l.prefix(format), v...) }
