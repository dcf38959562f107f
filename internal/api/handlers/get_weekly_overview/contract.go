package get_weekly_overview

import (
	"context"

	getWeeklyOverview "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_weekly_overview"
)

type GetWeeklyOverviewUseCase interface {
	Execute(ctx context.Context, req *getWeeklyOverview.Request) (*getWeeklyOverview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
