package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewListing, "listing"},
		{ViewVoterForm, "voter_form"},
		{ViewVolunteerForm, "volunteer_form"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestFormView(t *testing.T) {
	assert.Equal(t, ViewVoterForm, FormView(domain.FormVoter))
	assert.Equal(t, ViewVolunteerForm, FormView(domain.FormVolunteer))
}

func TestListingLoaded_CarriesCycle(t *testing.T) {
	listing := domain.NewListing(domain.FetchResult{})
	msg := ListingLoaded{Cycle: 3, Listing: listing}

	assert.Equal(t, 3, msg.Cycle)
	assert.Same(t, listing, msg.Listing)
	assert.NoError(t, msg.Err)
}
