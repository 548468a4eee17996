package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"pets-service/internal/client"

	"github.com/spf13/cobra"
)

const (
	defaultAddr    = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "petsctl",
		Short:        "Cliente de línea de comandos para la API de mascotas",
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.PersistentFlags().String("addr", defaultAddr, "URL base de la API")
	root.PersistentFlags().Duration("timeout", defaultTimeout, "Timeout por request")

	root.AddCommand(
		newListCmd(),
		newCreateCmd(),
		newUpdateCmd(),
	)
	return root
}

func apiClient(cmd *cobra.Command) (*client.Client, error) {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	return client.New(addr, timeout)
}

// petInput toma solo los flags presentes; un flag omitido no se envía.
func petInput(cmd *cobra.Command) (client.PetInput, error) {
	var in client.PetInput
	for flag, dst := range map[string]**string{"name": &in.Name, "type": &in.Type} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, err := cmd.Flags().GetString(flag)
		if err != nil {
			return in, err
		}
		*dst = &v
	}
	return in, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
