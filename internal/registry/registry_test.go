package registry

import (
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	created []string
}

func (f *fakeResolver) EnsureCreated(name string) error {
	f.created = append(f.created, name)
	return nil
}

func TestSetTopNameOnceOnly(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetTopName("icp", "registrar"))
	err := s.SetTopName("icp", "registrar")
	require.Error(t, err)
	e, ok := icnerrors.As(err)
	require.True(t, ok)
	require.Equal(t, icnerrors.CodeTopNameAlreadyExists, e.Code)
}

func TestSetSubdomainOwnerRequiresParentOwnership(t *testing.T) {
	fr := &fakeResolver{}
	s := NewStore(fr)
	require.NoError(t, s.SetTopName("icp", "registrar"))

	_, err := s.SetSubdomainOwner("nice", "icp", "someone-else", "owner1", DefaultTTL, "owner1")
	require.Error(t, err)

	entry, err := s.SetSubdomainOwner("nice", "icp", "registrar", "owner1", DefaultTTL, "owner1")
	require.NoError(t, err)
	require.Equal(t, principal.Principal("owner1"), entry.Owner)
	require.Contains(t, fr.created, "nice.icp")
}

func TestTransferResetsOperatorsAndResolver(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetTopName("icp", "registrar"))
	_, err := s.SetSubdomainOwner("nice", "icp", "registrar", "owner1", DefaultTTL, "owner1")
	require.NoError(t, err)

	require.NoError(t, s.SetApproval("owner1", "nice.icp", "operator1"))
	require.NoError(t, s.Transfer("nice.icp", "owner1", "owner2", "owner2"))

	details, err := s.GetDetails("nice.icp")
	require.NoError(t, err)
	require.Equal(t, principal.Principal("owner2"), details.Owner)
	require.Empty(t, details.Operators)
	require.Equal(t, principal.Principal("owner2"), details.Resolver)
}

func TestOperatorCannotEqualOwner(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetTopName("icp", "registrar"))
	_, err := s.SetSubdomainOwner("nice", "icp", "registrar", "owner1", DefaultTTL, "owner1")
	require.NoError(t, err)

	err = s.SetApproval("owner1", "nice.icp", "owner1")
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeOperatorShouldNotBeTheSameToOwner, e.Code)
}

func TestGetControlledNamesPages(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetTopName("icp", "registrar"))
	for _, label := range []string{"b", "a", "c"} {
		_, err := s.SetSubdomainOwner(label, "icp", "registrar", "owner1", DefaultTTL, "owner1")
		require.NoError(t, err)
	}
	names := s.GetControlledNames("owner1", 0, 2)
	require.Equal(t, []string{"a.icp", "b.icp"}, names)
}
