package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista todas las mascotas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			items, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Crea una mascota",
		Example: `petsctl create --name=Rex --type=dog`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			in, err := petInput(cmd)
			if err != nil {
				return err
			}
			pet, err := c.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, pet)
		},
	}
	addPetFlags(cmd)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update ID",
		Short:   "Reemplaza name y type de una mascota",
		Example: `petsctl update 1 --name=Max --type=dog`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			c, err := apiClient(cmd)
			if err != nil {
				return err
			}
			in, err := petInput(cmd)
			if err != nil {
				return err
			}
			pet, err := c.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printJSON(cmd, pet)
		},
	}
	addPetFlags(cmd)
	return cmd
}

func addPetFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Nombre de la mascota")
	cmd.Flags().String("type", "", "Tipo de mascota (dog, cat, ...)")
}
