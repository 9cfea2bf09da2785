package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/qagent"
)

// Ensure LoggingValidator implements qagent.Validator.
var _ qagent.Validator = (*LoggingValidator)(nil)

// LoggingValidator wraps a Validator with logging.
type LoggingValidator struct {
	next   qagent.Validator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next qagent.Validator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs counts per severity.
func (v *LoggingValidator) Validate(html, docs string) (findings []qagent.Finding) {
	defer func(begin time.Time) {
		groups := qagent.GroupFindings(findings)
		v.logger.Info("validate",
			"html_bytes", len(html),
			"docs_bytes", len(docs),
			"errors", len(groups.Errors),
			"warnings", len(groups.Warnings),
			"infos", len(groups.Infos),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return v.next.Validate(html, docs)
}
