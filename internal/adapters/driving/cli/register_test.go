package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

type submitCall struct {
	kind domain.FormKind
	reg  domain.Registration
}

func recordingSubmission(calls *[]submitCall, resp map[string]any, err error) *Services {
	return &Services{Submission: &mockSubmissionService{
		SubmitFunc: func(_ context.Context, kind domain.FormKind, reg domain.Registration) (map[string]any, error) {
			*calls = append(*calls, submitCall{kind, reg})
			if err == nil {
				if verr := reg.Validate(); verr != nil {
					return nil, verr
				}
			}
			return resp, err
		},
	}}
}

func TestRegisterCmd_Flags(t *testing.T) {
	for _, name := range []string{"nombre", "identificacion", "celular", "direccion", "barrio", "json"} {
		assert.NotNil(t, registerCmd.Flags().Lookup(name), name)
	}
}

func TestRegisterCmd_RequiresKind(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "register")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRegisterCmd_UnknownKind(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "register", "donor", "--nombre", "Ana", "--identificacion", "1")

	assert.ErrorIs(t, err, domain.ErrUnknownForm)
}

func TestRegisterCmd_Voter(t *testing.T) {
	var calls []submitCall
	cleanup := setupTestServices(recordingSubmission(&calls, map[string]any{"id": float64(42)}, nil))
	defer cleanup()

	out, _, err := execute(t, "register", "voter",
		"--nombre", "Ana Pérez", "--identificacion", "1010", "--barrio", "Centro")

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.FormVoter, calls[0].kind)
	assert.Equal(t, domain.Registration{Nombre: "Ana Pérez", Identificacion: "1010", Barrio: "Centro"}, calls[0].reg)
	assert.Contains(t, out, SavedMessage)
	assert.Contains(t, out, "ID: 42")
}

func TestRegisterCmd_VolunteerAlias(t *testing.T) {
	var calls []submitCall
	cleanup := setupTestServices(recordingSubmission(&calls, map[string]any{}, nil))
	defer cleanup()

	_, _, err := execute(t, "register", "voluntario", "--nombre", "Luis", "--identificacion", "2020")

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.FormVolunteer, calls[0].kind)
}

func TestRegisterCmd_ValidationErrorWithoutPrefix(t *testing.T) {
	var calls []submitCall
	cleanup := setupTestServices(recordingSubmission(&calls, nil, nil))
	defer cleanup()

	_, _, err := execute(t, "register", "voter", "--nombre", "Ana")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.RequiredFieldsMessage, err.Error())
}

func TestRegisterCmd_ServerError(t *testing.T) {
	var calls []submitCall
	apiErr := &domain.APIError{Status: 409, Message: "Identificación duplicada"}
	cleanup := setupTestServices(recordingSubmission(&calls, nil, apiErr))
	defer cleanup()

	_, _, err := execute(t, "register", "voter", "--nombre", "Ana", "--identificacion", "1")

	require.Error(t, err)
	assert.Equal(t, "⚠️ Identificación duplicada", err.Error())
	assert.ErrorAs(t, err, new(*domain.APIError))
}

func TestRegisterCmd_JSON(t *testing.T) {
	var calls []submitCall
	cleanup := setupTestServices(recordingSubmission(&calls, map[string]any{"id": "abc", "ok": true}, nil))
	defer cleanup()

	out, _, err := execute(t, "register", "voter", "--nombre", "Ana", "--identificacion", "1", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "abc", got["id"])
	assert.NotContains(t, out, SavedMessage)
}

func TestRegisterCmd_PromptsInTerminal(t *testing.T) {
	var calls []submitCall
	cleanup := setupTestServices(recordingSubmission(&calls, map[string]any{}, nil))
	defer cleanup()
	stdinIsTerminal = func() bool { return true }

	rootCmd.SetIn(strings.NewReader("Ana Pérez\n1010\n\nCalle 1\n"))
	out := new(strings.Builder)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"register", "voter", "--barrio", "Centro"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.Registration{
		Nombre: "Ana Pérez", Identificacion: "1010", Direccion: "Calle 1", Barrio: "Centro",
	}, calls[0].reg)
	assert.Contains(t, out.String(), "Formulario – Votante")
	assert.Contains(t, out.String(), "Identificación: ")
	assert.NotContains(t, out.String(), "Barrio: ")
}

func TestPromptRegistration_StopsAtEOF(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(new(strings.Builder))
	reg := domain.Registration{}

	err := promptRegistration(cmd, bufio.NewReader(strings.NewReader("Ana")), &reg)

	require.NoError(t, err)
	assert.Equal(t, "Ana", reg.Nombre)
	assert.Empty(t, reg.Identificacion)
}

func TestRegisterCmd_NilService(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	submissionService = nil

	_, _, err := execute(t, "register", "voter", "--nombre", "Ana", "--identificacion", "1")

	assert.EqualError(t, err, "submission service not configured")
}
