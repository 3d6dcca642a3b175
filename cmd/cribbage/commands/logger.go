package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/pterm/pterm"
)

// ptermLogger adapts pterm's prefix printers to runtime.Logger so the service
// logs the same way it does inside Nakama.
type ptermLogger struct {
	fields map[string]interface{}
}

func (l ptermLogger) Debug(format string, v ...interface{}) {
	pterm.Debug.Println(l.line(format, v...))
}

func (l ptermLogger) Info(format string, v ...interface{}) {
	pterm.Info.Println(l.line(format, v...))
}

func (l ptermLogger) Warn(format string, v ...interface{}) {
	pterm.Warning.Println(l.line(format, v...))
}

func (l ptermLogger) Error(format string, v ...interface{}) {
	pterm.Error.Println(l.line(format, v...))
}

func (l ptermLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l ptermLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return ptermLogger{fields: merged}
}

func (l ptermLogger) Fields() map[string]interface{} {
	return l.fields
}

func (l ptermLogger) line(format string, v ...interface{}) string {
	msg := fmt.Sprintf(format, v...)
	if len(l.fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, l.fields[k])
	}
	return msg + " " + strings.Join(parts, " ")
}
