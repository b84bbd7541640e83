package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icnaming/icnaming/internal/di"
)

var importQuotaFile string

var importQuotaCmd = &cobra.Command{
	Use:   "import-quota",
	Short: "Apply a zlib-compressed, whitelisted quota-import CSV batch",
	RunE:  runImportQuota,
}

func init() {
	importQuotaCmd.Flags().StringVar(&importQuotaFile, "file", "", "path to the zlib-compressed CSV batch")
	_ = importQuotaCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importQuotaCmd)
}

func runImportQuota(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(importQuotaFile)
	if err != nil {
		return fmt.Errorf("import-quota: read %s: %w", importQuotaFile, err)
	}

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return fmt.Errorf("import-quota: register services: %w", err)
	}
	reg, err := provider.GetRegistrar()
	if err != nil {
		return fmt.Errorf("import-quota: build registrar: %w", err)
	}

	items, digest, err := reg.Gateway.VerifyAndParse(data)
	if err != nil {
		return fmt.Errorf("import-quota: %w", err)
	}
	reg.ImportQuota(items)
	reg.Gateway.MarkImported(digest)

	fmt.Printf("applied %d entries (digest %s)\n", len(items), digest)
	return nil
}
