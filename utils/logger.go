package utils

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger builds the shared production logger (JSON to stdout, for
// aggregation tooling). Call Logger.Sync() on shutdown.
func InitLogger() {
	var err error
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	Logger, err = config.Build()
	if err != nil {
		panic(err)
	}
}
