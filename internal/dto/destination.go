package dto

import (
	"strings"

	"github.com/crucial707/travel-tracker/internal/models"
)

type CreateDestinationRequest struct {
	Name       string  `json:"name" validate:"notblank,max=255"`
	TravelDate *string `json:"travelDate" validate:"omitempty,isodate"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r CreateDestinationRequest) Normalize() (models.NewDestination, error) {
	if err := check(r); err != nil {
		return models.NewDestination{}, err
	}
	out := models.NewDestination{
		Name:  strings.TrimSpace(r.Name),
		Notes: r.Notes,
	}
	if r.TravelDate != nil {
		d, _ := parseDate(*r.TravelDate)
		out.TravelDate = &d
	}
	return out, nil
}

// UpdateDestinationRequest accepts any subset of the create fields.
type UpdateDestinationRequest struct {
	Name       *string `json:"name" validate:"omitempty,notblank,max=255"`
	TravelDate *string `json:"travelDate" validate:"omitempty,isodate"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r UpdateDestinationRequest) Normalize() (models.DestinationPatch, error) {
	if err := check(r); err != nil {
		return models.DestinationPatch{}, err
	}
	var out models.DestinationPatch
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		out.Name = &name
	}
	if r.TravelDate != nil {
		d, _ := parseDate(*r.TravelDate)
		out.TravelDate = &d
	}
	out.Notes = r.Notes
	return out, nil
}
