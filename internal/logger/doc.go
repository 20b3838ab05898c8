// Package logger wraps zap for the alarm-desk binaries:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and runtime level changes,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services take a context and extract the logger from it, so every log line
// carries the component name and request fields attached upstream.
package logger
