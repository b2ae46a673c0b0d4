package domain

import (
	"fmt"
	"strings"
)

// RequiredFieldsMessage is shown when a form is submitted without its
// required fields.
const RequiredFieldsMessage = "Nombre e identificación son obligatorios"

// Registration is the flat payload built from a data-entry form.
// It is sent verbatim as the request body.
type Registration struct {
	Nombre         string `json:"nombre"`
	Identificacion string `json:"identificacion"`
	Celular        string `json:"celular"`
	Direccion      string `json:"direccion"`
	Barrio         string `json:"barrio"`
}

// Validate checks the fields required before submission.
func (r Registration) Validate() error {
	var missing []string
	if r.Nombre == "" {
		missing = append(missing, "nombre")
	}
	if r.Identificacion == "" {
		missing = append(missing, "identificacion")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: RequiredFieldsMessage, Fields: missing}
	}
	return nil
}

// IsEmpty reports whether every field is blank.
func (r Registration) IsEmpty() bool {
	return r == Registration{}
}

// ValidationError is a local, synchronous form error.
// It unwraps to ErrValidation.
type ValidationError struct {
	Message string
	Fields  []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FormKind identifies one of the data-entry forms.
type FormKind string

const (
	// FormVoter registers a voter in /inscripciones.
	FormVoter FormKind = "voter"
	// FormVolunteer registers a volunteer in /registro_personas.
	FormVolunteer FormKind = "volunteer"
)

// FormKinds returns every form in menu order.
func FormKinds() []FormKind {
	return []FormKind{FormVoter, FormVolunteer}
}

// Path returns the write endpoint for the form.
func (k FormKind) Path() (string, error) {
	switch k {
	case FormVoter:
		return "/inscripciones", nil
	case FormVolunteer:
		return "/registro_personas", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownForm, string(k))
	}
}

// Title returns the heading shown above the form.
func (k FormKind) Title() string {
	switch k {
	case FormVoter:
		return "Formulario – Votante"
	case FormVolunteer:
		return "Formulario – Voluntario"
	default:
		return "Formulario"
	}
}

// ParseFormKind accepts the English kind names and their Spanish aliases.
func ParseFormKind(s string) (FormKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "voter", "votante":
		return FormVoter, nil
	case "volunteer", "voluntario", "nuevoliberalismo":
		return FormVolunteer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownForm, s)
	}
}
