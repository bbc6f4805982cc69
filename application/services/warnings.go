package services

import (
	"fmt"

	"go.uber.org/zap"
)

// warningCollector centralizes the "best effort" failure policy used by the
// cascade: a failed step is logged once, recorded as a warning on the result,
// and never aborts the operation that triggered it.
type warningCollector struct {
	logger   *zap.Logger
	warnings []string
}

func newWarningCollector(logger *zap.Logger) *warningCollector {
	return &warningCollector{logger: logger}
}

// bestEffort runs fn and converts any error into a warning. Returns true when
// fn succeeded.
func (c *warningCollector) bestEffort(op string, fn func() error) bool {
	if err := fn(); err != nil {
		c.warnf("%s: %v", op, err)
		return false
	}
	return true
}

// warnf records a formatted warning
func (c *warningCollector) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Warn("Cascade warning", zap.String("warning", msg))
	c.warnings = append(c.warnings, msg)
}
