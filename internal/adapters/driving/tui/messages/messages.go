// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewListing is the merged table of registrations.
	ViewListing
	// ViewVoterForm is the voter registration form.
	ViewVoterForm
	// ViewVolunteerForm is the volunteer registration form.
	ViewVolunteerForm
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewListing:
		return "listing"
	case ViewVoterForm:
		return "voter_form"
	case ViewVolunteerForm:
		return "volunteer_form"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FormView returns the view showing the given form.
func FormView(kind domain.FormKind) ViewType {
	if kind == domain.FormVolunteer {
		return ViewVolunteerForm
	}
	return ViewVoterForm
}

// ListingLoaded carries the result of one fetch cycle.
// Cycle identifies the request so results from abandoned cycles can be
// dropped.
type ListingLoaded struct {
	Cycle   int
	Listing *domain.Listing
	Err     error
}

// SubmissionCompleted carries the outcome of a form POST.
type SubmissionCompleted struct {
	Kind     domain.FormKind
	Response map[string]any
	Err      error
}

// NoticeExpired clears a transient notice if it is still the current one.
type NoticeExpired struct {
	Kind domain.FormKind
	Seq  int
}

// ConfigChanged signals the config file changed on disk.
type ConfigChanged struct{}

// SettingsReloaded carries settings re-read after a config change.
type SettingsReloaded struct {
	Settings domain.APISettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
