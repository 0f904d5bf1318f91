package suppliers

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

const maxGallerySize = 12

func validateProfile(p Profile) error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return fmt.Errorf("%w: business name required", httpx.ErrValidation)
	}
	if len(p.BusinessName) > 160 {
		return fmt.Errorf("%w: business name too long", httpx.ErrValidation)
	}
	if len(p.Description) > 2000 {
		return fmt.Errorf("%w: description too long", httpx.ErrValidation)
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("%w: invalid contact email", httpx.ErrValidation)
		}
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", httpx.ErrValidation)
	}
	if p.Latitude != nil {
		if *p.Latitude < -90 || *p.Latitude > 90 {
			return fmt.Errorf("%w: latitude out of range", httpx.ErrValidation)
		}
		if *p.Longitude < -180 || *p.Longitude > 180 {
			return fmt.Errorf("%w: longitude out of range", httpx.ErrValidation)
		}
	}
	if len(p.Gallery) > maxGallerySize {
		return fmt.Errorf("%w: gallery holds at most %d images", httpx.ErrValidation, maxGallerySize)
	}
	return nil
}
