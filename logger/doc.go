// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, named
// component loggers and request-ID propagation through a context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("chatgpt")
//	log.Info("completion received", logger.Fields("model", "gpt-4"))
package logger
