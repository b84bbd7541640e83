package gateway

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/stretchr/testify/require"
)

func zlibCompress(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func hashOf(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestImportIdempotence(t *testing.T) {
	csv := "user1,LenGte(4),2\nuser2,LenEq(5),1\n"
	digest := hashOf(csv)
	s := NewStore([]string{digest})

	items, gotDigest, err := s.VerifyAndParse(zlibCompress(t, csv))
	require.NoError(t, err)
	require.Equal(t, digest, gotDigest)
	require.Len(t, items, 2)

	s.MarkImported(gotDigest)

	_, _, err = s.VerifyAndParse(zlibCompress(t, csv))
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeAlreadyExists, e.Code)
}

func TestImportRejectsNonWhitelisted(t *testing.T) {
	s := NewStore(nil)
	_, _, err := s.VerifyAndParse(zlibCompress(t, "user1,LenGte(4),2\n"))
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeInvalidRequest, e.Code)
}

func TestAssignNameIdempotent(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AssignName("nice.icp"))
	err := s.AssignName("nice.icp")
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeAlreadyAssigned, e.Code)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewStore([]string{"deadbeef"})
	s.MarkImported("digest-1")
	s.MarkImported("digest-2")
	require.NoError(t, s.AssignName("nice.icp"))

	snap := s.Snapshot()
	require.ElementsMatch(t, []string{"digest-1", "digest-2"}, snap.Imported)
	require.ElementsMatch(t, []string{"nice.icp"}, snap.AssignedNames)

	restored := NewStore([]string{"deadbeef"})
	restored.Restore(snap)

	err := restored.AssignName("nice.icp")
	require.Error(t, err)
	e, _ := icnerrors.As(err)
	require.Equal(t, icnerrors.CodeAlreadyAssigned, e.Code)

	csv := "user1,LenGte(4),2\n"
	restored2 := NewStore([]string{hashOf(csv)})
	restored2.Restore(snap)
	_, _, err = restored2.VerifyAndParse(zlibCompress(t, csv))
	require.NoError(t, err, "a hash absent from the persisted imported ledger must still be importable")
}
