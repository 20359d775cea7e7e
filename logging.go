package edgehttp

import "go.uber.org/zap"

var logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger swaps the package-level logger used by the request manager
// for diagnostics. Passing nil restores the no-op default.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l
}
