package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns newest first with errors", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{listing: sampleListing()}, nil)
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 2, output.Total)
		require.Len(t, output.Records, 2)
		assert.Equal(t, "Luis Gómez", output.Records[0].Nombre)
		assert.Equal(t, "REGISTRO_PERSONAS", output.Records[0].Source)
		assert.Equal(t, "b-7", output.Records[0].ID)
		assert.Equal(t, "1", output.Records[1].ID)
		assert.Equal(t, []string{"/inscripciones: timeout"}, output.Errors)
	})

	t.Run("filters by source and query", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{listing: sampleListing()}, nil)
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{Source: "inscripciones", Query: "CENTRO"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 2, output.Total)
		assert.Equal(t, "Ana Pérez", output.Records[0].Nombre)
	})

	t.Run("unknown source fails before loading", func(t *testing.T) {
		listing := &mockListingService{}
		server, err := newTestServer(listing, nil)
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{Source: "otros"})

		assert.ErrorIs(t, err, domain.ErrUnknownSource)
		assert.Zero(t, listing.loads)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server, err := newTestServer(&mockListingService{err: domain.ErrAPIUnavailable}, nil)
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{})

		assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
	})
}

func TestServer_handleRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("submits volunteer form", func(t *testing.T) {
		submission := &mockSubmissionService{response: map[string]any{"id": float64(9)}}
		server, err := newTestServer(nil, submission)
		require.NoError(t, err)

		_, output, err := server.handleRegister(ctx, nil, RegisterInput{
			Form: "volunteer", Nombre: "Luis", Identificacion: "2020", Barrio: "Norte",
		})

		require.NoError(t, err)
		assert.True(t, output.Saved)
		assert.Equal(t, "9", output.ID)
		assert.Equal(t, domain.FormVolunteer, submission.kind)
		assert.Equal(t, domain.Registration{Nombre: "Luis", Identificacion: "2020", Barrio: "Norte"}, submission.reg)
	})

	t.Run("missing required fields are not sent", func(t *testing.T) {
		submission := &mockSubmissionService{}
		server, err := newTestServer(nil, submission)
		require.NoError(t, err)

		_, output, err := server.handleRegister(ctx, nil, RegisterInput{Form: "voter", Nombre: "Ana"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, output.Saved)
		assert.Zero(t, submission.calls)
	})

	t.Run("unknown form", func(t *testing.T) {
		server, err := newTestServer(nil, nil)
		require.NoError(t, err)

		_, _, err = server.handleRegister(ctx, nil, RegisterInput{Form: "donor", Nombre: "Ana", Identificacion: "1"})

		assert.ErrorIs(t, err, domain.ErrUnknownForm)
	})

	t.Run("server error is returned", func(t *testing.T) {
		submission := &mockSubmissionService{err: errors.New("Identificación duplicada")}
		server, err := newTestServer(nil, submission)
		require.NoError(t, err)

		_, _, err = server.handleRegister(ctx, nil, RegisterInput{Form: "voter", Nombre: "Ana", Identificacion: "1"})

		assert.EqualError(t, err, "Identificación duplicada")
	})
}
