package build_timeline

import "fmt"

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resourceIDs must be positive", ErrInvalidInput)
		}
	}

	return nil
}
