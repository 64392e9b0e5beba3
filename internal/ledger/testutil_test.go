package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestLedger creates an in-memory ledger for testing
func SetupTestLedger(t *testing.T) *Ledger {
	t.Helper()

	l, err := Open(":memory:")
	require.NoError(t, err, "Failed to create test ledger")

	t.Cleanup(func() {
		require.NoError(t, l.Close(), "Failed to close test ledger")
	})

	return l
}
