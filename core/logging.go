package core

// Logger is the minimal logging contract shared by the API server, the
// facade and the logger services.
// expected args: error, map[string]interface{}, Identity ...
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
