package get_timeline

import (
	buildTimeline "github.com/avdk/SBM-ReservationService/internal/usecase/build_timeline"
)

// BookingBlockResponse запись на дорожке таймлайна
type BookingBlockResponse struct {
	BookingID    int64   `json:"booking_id"`
	MenuID       int64   `json:"menu_id"`
	Status       string  `json:"status"`
	CustomerName string  `json:"customer_name,omitempty"`
	StartHour    float64 `json:"start_hour"`
	EndHour      float64 `json:"end_hour"`
}

// WorkBlockResponse рабочий интервал смены с записями внутри
type WorkBlockResponse struct {
	StartHour float64                `json:"start_hour"`
	EndHour   float64                `json:"end_hour"`
	Bookings  []BookingBlockResponse `json:"bookings"`
}

// LaneResponse дорожка одного мастера
type LaneResponse struct {
	ResourceID int64                  `json:"resource_id"`
	Name       string                 `json:"name"`
	Status     string                 `json:"status"`
	WorkBlocks []WorkBlockResponse    `json:"work_blocks"`
	OutOfShift []BookingBlockResponse `json:"out_of_shift,omitempty"`
}

// TimelineResponse HTTP response model
type TimelineResponse struct {
	Date          string         `json:"date"`
	Timezone      string         `json:"timezone"`
	AxisStartHour int            `json:"axis_start_hour"`
	AxisEndHour   int            `json:"axis_end_hour"`
	Lanes         []LaneResponse `json:"lanes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *buildTimeline.Response) *TimelineResponse {
	lanes := make([]LaneResponse, 0, len(resp.Lanes))
	for _, lane := range resp.Lanes {
		lanes = append(lanes, LaneResponse{
			ResourceID: lane.ResourceID,
			Name:       lane.Name,
			Status:     lane.Status,
			WorkBlocks: workBlocks(lane.WorkBlocks),
			OutOfShift: bookingBlocks(lane.OutOfShift),
		})
	}

	return &TimelineResponse{
		Date:          resp.Date,
		Timezone:      resp.Timezone,
		AxisStartHour: resp.AxisStartHour,
		AxisEndHour:   resp.AxisEndHour,
		Lanes:         lanes,
	}
}

func workBlocks(blocks []buildTimeline.WorkBlock) []WorkBlockResponse {
	result := make([]WorkBlockResponse, 0, len(blocks))
	for _, block := range blocks {
		bookings := bookingBlocks(block.Bookings)
		if bookings == nil {
			bookings = []BookingBlockResponse{}
		}
		result = append(result, WorkBlockResponse{
			StartHour: block.StartHour,
			EndHour:   block.EndHour,
			Bookings:  bookings,
		})
	}
	return result
}

func bookingBlocks(blocks []buildTimeline.BookingBlock) []BookingBlockResponse {
	if len(blocks) == 0 {
		return nil
	}

	result := make([]BookingBlockResponse, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, BookingBlockResponse{
			BookingID:    block.BookingID,
			MenuID:       block.MenuID,
			Status:       block.Status,
			CustomerName: block.CustomerName,
			StartHour:    block.StartHour,
			EndHour:      block.EndHour,
		})
	}
	return result
}
