// Package logger wraps zap with a process-wide sugared logger and context
// helpers (ToContext/FromContext/WithName/WithKV).
//
// Every service takes a context and logs through it, so the release driver
// and the packages it calls share one scoped, structured logger.
package logger
