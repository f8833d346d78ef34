// Package logging builds the zap loggers used by the chartspec command.
package logging
