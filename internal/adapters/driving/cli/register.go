package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// SavedMessage is printed after a successful submission.
const SavedMessage = "✅ Registro guardado"

var (
	registerReg  domain.Registration
	registerJSON bool
)

var registerCmd = &cobra.Command{
	Use:   "register <voter|volunteer>",
	Short: "Submit a registration form",
	Long: `Submits the voter form to /inscripciones or the volunteer form to
/registro_personas.

Nombre and identificación are required. When run in a terminal, missing
fields are prompted for; otherwise pass them as flags.

Examples:
  registro register voter --nombre "Ana Pérez" --identificacion 1010
  registro register voluntario --nombre "Luis" --identificacion 2020 --barrio Centro`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"voter", "volunteer", "votante", "voluntario"},
	RunE:      runRegister,
}

func init() {
	flags := registerCmd.Flags()
	flags.StringVar(&registerReg.Nombre, "nombre", "", "full name (required)")
	flags.StringVar(&registerReg.Identificacion, "identificacion", "", "identification number (required)")
	flags.StringVar(&registerReg.Celular, "celular", "", "mobile phone")
	flags.StringVar(&registerReg.Direccion, "direccion", "", "address")
	flags.StringVar(&registerReg.Barrio, "barrio", "", "neighbourhood")
	flags.BoolVar(&registerJSON, "json", false, "print the server response as JSON")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseFormKind(args[0])
	if err != nil {
		return err
	}

	reg := registerReg
	if stdinIsTerminal() && reg.Validate() != nil {
		cmd.Println(kind.Title())
		if err := promptRegistration(cmd, bufio.NewReader(cmd.InOrStdin()), &reg); err != nil {
			return err
		}
	}

	if err := ensureServices(cmd); err != nil {
		return err
	}
	if submissionService == nil {
		return errors.New("submission service not configured")
	}

	resp, err := submissionService.Submit(cmd.Context(), kind, reg)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		return fmt.Errorf("⚠️ %w", err)
	}

	if registerJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(SavedMessage)
	if id, ok := resp["id"]; ok {
		cmd.Printf("ID: %s\n", domain.ScalarString(id))
	}
	return nil
}

// promptRegistration asks for every empty field, keeping flag values.
func promptRegistration(cmd *cobra.Command, reader *bufio.Reader, reg *domain.Registration) error {
	fields := []struct {
		label string
		value *string
	}{
		{"Nombre", &reg.Nombre},
		{"Identificación", &reg.Identificacion},
		{"Celular", &reg.Celular},
		{"Dirección", &reg.Direccion},
		{"Barrio", &reg.Barrio},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		cmd.Printf("%s: ", f.label)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read %s: %w", strings.ToLower(f.label), err)
		}
		*f.value = strings.TrimRight(line, "\r\n")
		if errors.Is(err, io.EOF) {
			break
		}
	}
	return nil
}
