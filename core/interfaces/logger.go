// ABOUTME: Structured logging contract shared by extension settings, the document service and the CLI
// ABOUTME: Implemented by infrastructure/logger/logrus; a nil Logger means silent everywhere it is accepted

package interfaces

// Logger is the leveled, field-based logger used across the module.
//
// Example usage:
//
//	logger.Debug("Skipping unknown extension namespace", map[string]interface{}{
//		"namespace": "urn:example:custom",
//		"element":   "item",
//	})
//
//	logger.Error("Failed to load document", map[string]interface{}{
//		"index": 2,
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug records detail such as skipped namespaces and unparseable extension fields
	Debug(msg string, fields map[string]interface{})

	// Info records completed operations, for example a stored document
	Info(msg string, fields map[string]interface{})

	// Warn records conditions that do not stop the operation
	Warn(msg string, fields map[string]interface{})

	// Error records failures, for example a document that could not be loaded
	Error(msg string, fields map[string]interface{})
}
