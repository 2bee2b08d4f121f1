// Package logger wraps zap with a console encoder, level parsing and
// context helpers. Services pull their logger from the context so that
// fields attached near the composition root (game id, command name)
// follow every line they write.
package logger
