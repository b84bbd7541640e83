package resolver

import (
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatedIdempotent(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	require.NoError(t, s.EnsureCreated("nice.icp"))
	kv, err := s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.Empty(t, kv)
}

func TestSetRecordValueValidatesETH(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))

	err := s.SetRecordValue("nice.icp", map[string]string{"token.eth": "not-hex"})
	require.Error(t, err)

	err = s.SetRecordValue("nice.icp", map[string]string{"token.eth": "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"})
	require.NoError(t, err)
	kv, err := s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", kv["token.eth"])
}

func TestSetRecordValueEmptyDeletes(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	require.NoError(t, s.SetRecordValue("nice.icp", map[string]string{"email": "a@b.com"}))
	require.NoError(t, s.SetRecordValue("nice.icp", map[string]string{"email": ""}))
	kv, err := s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.NotContains(t, kv, "email")
}

func TestPrimaryNameBijection(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	require.NoError(t, s.EnsureCreated("other.icp"))

	owner := principal.Principal("u1")
	require.NoError(t, s.SetPrimaryName(owner, owner, "nice.icp", false))

	name, ok := s.ReverseResolvePrincipal(owner)
	require.True(t, ok)
	require.Equal(t, "nice.icp", name)

	kv, err := s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.Equal(t, string(owner), kv[KeyReverseResolutionPrincipal])

	// rebinding to other.icp removes the old binding
	require.NoError(t, s.SetPrimaryName(owner, owner, "other.icp", false))
	kv, err = s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.NotContains(t, kv, KeyReverseResolutionPrincipal)
}

func TestPrimaryNameOperatorRejected(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	err := s.SetPrimaryName("operator1", "owner1", "nice.icp", false)
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodePermissionDenied, e.Code)
}

func TestTooManyResolverKeys(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	patch := map[string]string{}
	for i := 0; i < MaxItems+1; i++ {
		patch[string(rune('a'+i))] = "v"
	}
	err := s.SetRecordValue("nice.icp", patch)
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeTooManyResolverKeys, e.Code)
}

func TestRemoveResolversPurgesReverseIndex(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	owner := principal.Principal("u1")
	require.NoError(t, s.SetPrimaryName(owner, owner, "nice.icp", false))

	s.RemoveResolvers([]string{"nice.icp"})

	_, ok := s.ReverseResolvePrincipal(owner)
	require.False(t, ok)
	_, err := s.GetRecordValue("nice.icp")
	require.Error(t, err)
}

func TestImportRecordValueInsertOrIgnore(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.EnsureCreated("nice.icp"))
	require.NoError(t, s.ImportRecordValue("nice.icp", []PatchItem{
		{Key: "url", Value: "https://a", Op: Upsert},
	}))
	require.NoError(t, s.ImportRecordValue("nice.icp", []PatchItem{
		{Key: "url", Value: "https://b", Op: InsertOrIgnore},
	}))
	kv, err := s.GetRecordValue("nice.icp")
	require.NoError(t, err)
	require.Equal(t, "https://a", kv["url"])
}
