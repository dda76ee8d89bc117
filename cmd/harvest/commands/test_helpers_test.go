package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
	"github.com/fivetwenty-io/harvest/pkg/harvestclient"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// newFakeHarvest starts a server answering the given request URIs with XML
// bodies and returns a client for it.
func newFakeHarvest(t *testing.T, routes map[string]string) harvest.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, ok := routes[request.URL.RequestURI()]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		writer.Header().Set("Content-Type", "application/xml")
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := harvestclient.NewWithPassword(context.Background(), server.URL, "user@example.com", "secret")
	require.NoError(t, err)

	return client
}
