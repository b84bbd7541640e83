package config

import "fmt"

// Flavor selects the compile-time build variant. The top label and the
// named collaborator principals are fixed per flavor at build time — they
// are part of the release artifact, not runtime configuration (spec §6).
type Flavor string

const (
	FlavorDev        Flavor = "dev"
	FlavorStaging    Flavor = "staging"
	FlavorProduction Flavor = "production"
)

func (f Flavor) Valid() bool {
	switch f {
	case FlavorDev, FlavorStaging, FlavorProduction:
		return true
	}
	return false
}

// topLabelByFlavor mirrors the original's per-flavor TOP_LABEL constant.
var topLabelByFlavor = map[Flavor]string{
	FlavorDev:        "icp",
	FlavorStaging:    "ticp",
	FlavorProduction: "icp",
}

// TopLabel returns the compile-time top-level label for f.
func TopLabel(f Flavor) (string, error) {
	label, ok := topLabelByFlavor[f]
	if !ok {
		return "", fmt.Errorf("config: unknown flavor %q", f)
	}
	return label, nil
}

// CollaboratorPrincipals are the named collaborator canisters/services this
// service calls out to. Compile-time constants per flavor, the way the
// original fixes CANISTER_NAME_REGISTRY/REGISTRAR/RESOLVER per network.
type CollaboratorPrincipals struct {
	Registry      string
	Resolver      string
	Registrar     string
	Gateway       string
	Ledger        string
	CyclesMinting string
	Favorites     string
}

var collaboratorsByFlavor = map[Flavor]CollaboratorPrincipals{
	FlavorDev: {
		Registry: "dev-registry", Resolver: "dev-resolver", Registrar: "dev-registrar",
		Gateway: "dev-gateway", Ledger: "dev-ledger", CyclesMinting: "dev-cmc", Favorites: "dev-favorites",
	},
	FlavorStaging: {
		Registry: "staging-registry", Resolver: "staging-resolver", Registrar: "staging-registrar",
		Gateway: "staging-gateway", Ledger: "staging-ledger", CyclesMinting: "staging-cmc", Favorites: "staging-favorites",
	},
	FlavorProduction: {
		Registry: "registry", Resolver: "resolver", Registrar: "registrar",
		Gateway: "gateway", Ledger: "ledger", CyclesMinting: "cycles-minting", Favorites: "favorites",
	},
}

// Collaborators returns the fixed collaborator principal set for f.
func Collaborators(f Flavor) (CollaboratorPrincipals, error) {
	c, ok := collaboratorsByFlavor[f]
	if !ok {
		return CollaboratorPrincipals{}, fmt.Errorf("config: unknown flavor %q", f)
	}
	return c, nil
}
