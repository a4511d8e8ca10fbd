package pipeline

import "github.com/dcms-platform/manifest-service/pkg/logging"

// ProgressNotifier receives human-readable progress messages at fixed
// pipeline checkpoints. Delivery is best-effort: implementations should not
// block, and any error or panic they raise is absorbed by the pipeline.
type ProgressNotifier interface {
	Notify(message string)
}

// NoopNotifier discards all progress messages.
type NoopNotifier struct{}

func (NoopNotifier) Notify(string) {}

// LoggerNotifier reports progress through the structured logger.
type LoggerNotifier struct {
	Logger *logging.Logger
}

func (n LoggerNotifier) Notify(message string) {
	n.Logger.Info("Pipeline progress", "message", message)
}

// FuncNotifier adapts a plain function to the ProgressNotifier interface.
type FuncNotifier func(message string)

func (f FuncNotifier) Notify(message string) { f(message) }
