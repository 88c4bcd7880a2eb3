package logger

// NopLogger discards everything. Used in tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (n *NopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (n *NopLogger) Info(module string, message string, details map[string]interface{})  {}
func (n *NopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (n *NopLogger) Error(module string, message string, details map[string]interface{}) {}
func (n *NopLogger) Sync() error                                                         { return nil }
