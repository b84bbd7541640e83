package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icnaming/icnaming/internal/di"
	"github.com/icnaming/icnaming/internal/principal"
)

var (
	assignNameName  string
	assignNameOwner string
	assignNameYears uint32
)

var assignNameCmd = &cobra.Command{
	Use:   "assign-name",
	Short: "Idempotently assign an off-chain name to an owner without charging quota",
	RunE:  runAssignName,
}

func init() {
	assignNameCmd.Flags().StringVar(&assignNameName, "name", "", "first-level name to assign")
	assignNameCmd.Flags().StringVar(&assignNameOwner, "owner", "", "owner principal")
	assignNameCmd.Flags().Uint32Var(&assignNameYears, "years", 1, "registration years")
	_ = assignNameCmd.MarkFlagRequired("name")
	_ = assignNameCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(assignNameCmd)
}

func runAssignName(cmd *cobra.Command, args []string) error {
	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return fmt.Errorf("assign-name: register services: %w", err)
	}
	reg, err := provider.GetRegistrar()
	if err != nil {
		return fmt.Errorf("assign-name: build registrar: %w", err)
	}

	if err := reg.Gateway.AssignName(assignNameName); err != nil {
		return fmt.Errorf("assign-name: %w", err)
	}
	owner := principal.Principal(assignNameOwner)
	if err := reg.RegisterFromGateway(assignNameName, owner, assignNameYears); err != nil {
		return fmt.Errorf("assign-name: %w", err)
	}

	fmt.Printf("assigned %s to %s\n", assignNameName, assignNameOwner)
	return nil
}
