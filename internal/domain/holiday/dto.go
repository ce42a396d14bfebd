package holiday

import "github.com/mrkunal0430/hrms/internal/pkg/validator"

// CreateHolidayRequest is the HR payload for adding a holiday.
type CreateHolidayRequest struct {
	Date       string `json:"date"`
	Title      string `json:"title"`
	IsOptional bool   `json:"is_optional"`
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HolidayResponse is the wire shape of a holiday.
type HolidayResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	IsOptional bool   `json:"is_optional"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:         h.ID,
		Date:       h.Date.Format("2006-01-02"),
		Title:      h.Title,
		IsOptional: h.IsOptional,
	}
}
