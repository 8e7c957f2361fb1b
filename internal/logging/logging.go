// Package logging builds the process-wide *zap.Logger handed to long-lived
// components at construction instead of a package-level global.
package logging

import "go.uber.org/zap"

// New builds a production zap logger, or a development logger (human
// readable, debug-level) when dev is true.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
