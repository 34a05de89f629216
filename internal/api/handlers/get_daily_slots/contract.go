package get_daily_slots

import (
	"context"

	getDailySlots "github.com/avdk/SBM-ReservationService/internal/usecase/get_daily_slots"
)

type GetDailySlotsUseCase interface {
	Execute(ctx context.Context, req *getDailySlots.Request) (*getDailySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
