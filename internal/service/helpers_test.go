package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/testutil"
)

// newBackendClient starts a stub backend and returns a real request helper pointed at it.
func newBackendClient(t *testing.T) (*testutil.Backend, *apiclient.Client) {
	t.Helper()
	backend := testutil.NewBackend(t)
	client, err := apiclient.New(apiclient.Options{BaseURL: backend.URL})
	require.NoError(t, err)
	return backend, client
}
