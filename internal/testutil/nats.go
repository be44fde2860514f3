package testutil

import (
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartNATS runs an embedded NATS server on a random port and returns a
// connected client. Both are shut down when the test completes.
func StartNATS(t *testing.T) *nats.Conn {
	t.Helper()
	server, err := natsserver.NewServer(&natsserver.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		t.Fatalf("starting nats server: %v", err)
	}
	go server.Start()
	if !server.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}

	nc, err := nats.Connect(server.ClientURL())
	if err != nil {
		server.Shutdown()
		t.Fatalf("connecting to nats: %v", err)
	}
	t.Cleanup(func() {
		nc.Close()
		server.Shutdown()
		server.WaitForShutdown()
	})
	return nc
}
