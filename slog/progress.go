package slog

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/pagetext/fanout"
)

// LogProgress returns a fanout.ProgressFunc that reports a run to logger.
func LogProgress(logger *slog.Logger) fanout.ProgressFunc {
	return func(e fanout.ProgressEvent) {
		switch e.Type {
		case fanout.ProgressStarted:
			logger.Info(fmt.Sprintf("downloading %d urls in %d chunks", e.Total, e.Chunks))
		case fanout.ProgressChunkSettled:
			logger.Info("chunk settled",
				"chunk", e.Chunk+1,
				"chunks", e.Chunks,
				"completed", e.Completed,
				"total", e.Total,
				"failed", e.Failed,
			)
		case fanout.ProgressFinished:
			if e.Error != nil {
				logger.Warn("run interrupted", "completed", e.Completed, "total", e.Total, "err", e.Error)
				return
			}
			logger.Info(fmt.Sprintf("downloaded %d urls", e.Total))
		}
	}
}
