package get_timeline

import (
	"context"

	buildTimeline "github.com/avdk/SBM-ReservationService/internal/usecase/build_timeline"
)

type BuildTimelineUseCase interface {
	Execute(ctx context.Context, req *buildTimeline.Request) (*buildTimeline.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
