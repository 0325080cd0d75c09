// Package forms holds the input rules of the portal's entry forms. The
// facade checks a form here before handing it to the orchestrator, which
// forwards whatever it is given.
package forms

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-krishi-portal/prefs"
	"github.com/goliatone/go-krishi-portal/remote"
)

// ErrInvalidInput wraps every validation failure. The underlying
// validation.Errors stays reachable through errors.As.
var ErrInvalidInput = errors.New("forms: invalid input")

// MaxAttachmentBytes caps the decoded size of an expert query image.
const MaxAttachmentBytes = 2 << 20

var languages = []any{string(prefs.English), string(prefs.Hindi)}

var imageDataURL = regexp.MustCompile(`^data:image/(jpeg|jpg|png);base64,`)

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// ValidateProfile checks the profile setup form.
func ValidateProfile(p remote.UserProfile) error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Location, validation.Required),
		validation.Field(&p.LandSize, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&p.PreferredLanguage, validation.Required, validation.In(languages...)),
	))
}

func ValidateAdvisory(crop, guidance, season string) error {
	return invalid(validation.Errors{
		"crop":     validation.Validate(crop, validation.Required),
		"guidance": validation.Validate(guidance, validation.Required),
		"season":   validation.Validate(season, validation.Required),
	}.Filter())
}

func ValidatePrice(crop string, price uint64, location string) error {
	return invalid(validation.Errors{
		"crop":     validation.Validate(crop, validation.Required),
		"price":    validation.Validate(price, validation.Required),
		"location": validation.Validate(location, validation.Required),
	}.Filter())
}

func ValidateScheme(name, description, eligibility string) error {
	return invalid(validation.Errors{
		"name":        validation.Validate(name, validation.Required),
		"description": validation.Validate(description, validation.Required),
		"eligibility": validation.Validate(eligibility, validation.Required),
	}.Filter())
}

// ValidateSoilReport accepts pH in [0, 14].
func ValidateSoilReport(ph float64, nutrients, recommendations string) error {
	return invalid(validation.Errors{
		"ph":              validation.Validate(ph, validation.Min(0.0), validation.Max(14.0)),
		"nutrients":       validation.Validate(nutrients, validation.Required),
		"recommendations": validation.Validate(recommendations, validation.Required),
	}.Filter())
}

// ValidateQuestion checks an expert query. An attachment must be a jpeg or
// png data URL no larger than MaxAttachmentBytes once decoded.
func ValidateQuestion(question string, attachment remote.Option[string]) error {
	errs := validation.Errors{
		"question": validation.Validate(question, validation.Required),
	}
	if a, ok := attachment.Get(); ok {
		errs["attachment"] = validation.Validate(a,
			validation.Required,
			is.DataURI,
			validation.Match(imageDataURL).Error("must be a jpeg or png image"),
			validation.By(attachmentSize),
		)
	}
	return invalid(errs.Filter())
}

func ValidateResponse(response string) error {
	return invalid(validation.Validate(response, validation.Required))
}

func ValidateRole(role remote.Role) error {
	if role.Valid() {
		return nil
	}
	return invalid(fmt.Errorf("unknown role %q", role))
}

func attachmentSize(v any) error {
	s, _ := v.(string)
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return errors.New("missing payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return errors.New("payload is not base64")
	}
	if len(data) > MaxAttachmentBytes {
		return fmt.Errorf("image must not exceed %d MB", MaxAttachmentBytes>>20)
	}
	return nil
}
