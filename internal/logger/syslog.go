//go:build !windows && !plan9

package logger

import (
	"fmt"
	"log/syslog"
)

// Syslog sends degradation notices to the local syslog daemon using the
// LOCAL4 facility.
type Syslog struct {
	w *syslog.Writer
}

func NewSyslog(tag string) (*Syslog, error) {
	w, err := syslog.New(syslog.LOG_LOCAL4|syslog.LOG_WARNING, tag)
	if err != nil {
		return nil, fmt.Errorf("open syslog: %w", err)
	}
	return &Syslog{w: w}, nil
}

func (s *Syslog) Notify(msg string) error {
	return s.w.Warning(msg)
}

func (s *Syslog) Close() error {
	return s.w.Close()
}
