package mongostore_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"notes/internal/note"
	"notes/internal/store/mongostore"
	"notes/internal/store/storetest"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestConformance(t *testing.T) {
	if os.Getenv("NOTES_INTEGRATION") != "1" {
		t.Skip("set NOTES_INTEGRATION=1 to run against a mongo container")
	}
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "27017")
	require.NoError(t, err)
	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	storetest.Run(t, func(t *testing.T) note.Store {
		coll := strings.NewReplacer("/", "_").Replace(t.Name())
		s, err := mongostore.Connect(ctx, uri, "notes_test", coll)
		require.NoError(t, err)
		return s
	}, "000000000000000000000000")
}
