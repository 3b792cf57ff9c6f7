package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/dori/larder/internal/expiry"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Item represents one tracked food entry
type Item struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name" validate:"required"`
	Date    string `json:"date" validate:"required,expirydate"`
	Genre   string `json:"genre"`
	Area    string `json:"area"`
	Remarks string `json:"remarks,omitempty"`
}

// ErrValidation covers user-correctable input problems; the UI reports the
// message inline and keeps the form state.
var ErrValidation = errors.New("invalid item")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// expirydate requires a canonical YYYY-MM-DD string encoding a real
	// calendar date, with no rollover of overflowed components.
	v.RegisterValidation("expirydate", func(fl validator.FieldLevel) bool {
		_, err := expiry.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// NewItem builds an item with a fresh synthetic identifier.
func NewItem(name, date, genre, area, remarks string) Item {
	return Item{
		ID:      uuid.New().String(),
		Name:    name,
		Date:    date,
		Genre:   genre,
		Area:    area,
		Remarks: remarks,
	}
}

// Validate checks the save-time field rules: non-empty name and a valid
// calendar date. The returned error wraps ErrValidation and carries a
// message suitable for inline display.
func (i Item) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	first := verrs[0]
	switch {
	case first.Field() == "Name":
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	case first.Field() == "Date" && first.Tag() == "required":
		return fmt.Errorf("%w: expiry date must not be empty", ErrValidation)
	default:
		return fmt.Errorf("%w: expiry date is not a valid calendar date", ErrValidation)
	}
}

// ExpiryDate parses the item's canonical date string.
func (i Item) ExpiryDate() (time.Time, error) {
	return expiry.ParseDate(i.Date)
}

// Classify derives the item's expiry status relative to today.
func (i Item) Classify(today time.Time) expiry.Status {
	d, err := i.ExpiryDate()
	if err != nil {
		// The stored-date invariant makes this unreachable for items that
		// passed Validate; an unparsable date reads as far future.
		return expiry.Status{DaysUntil: 1 << 30}
	}
	return expiry.Classify(d, today)
}
