package mock

import (
	"context"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"trisa-demo/relay/internal/rvasp/api"
)

const bufSize = 1024 * 1024

// Network serves mock rVASPs over in-memory bufconn listeners, addressed by name.
// Clients reach them with DialOption and a "passthrough:///<name>" target.
type Network struct {
	mu        sync.Mutex
	listeners map[string]*bufconn.Listener
	servers   map[string]*grpc.Server
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		listeners: make(map[string]*bufconn.Listener),
		servers:   make(map[string]*grpc.Server),
	}
}

// Serve starts srv at name and returns the dial target for it.
func (n *Network) Serve(name string, srv api.TRISADemoServer, opts ...grpc.ServerOption) string {
	lis := bufconn.Listen(bufSize)
	gs := grpc.NewServer(opts...)
	api.RegisterTRISADemoServer(gs, srv)
	go gs.Serve(lis)

	n.mu.Lock()
	n.listeners[name] = lis
	n.servers[name] = gs
	n.mu.Unlock()
	return "passthrough:///" + name
}

// Stop stops the server at name, dropping its open streams. Later dials to it fail.
func (n *Network) Stop(name string) {
	n.mu.Lock()
	gs, ok := n.servers[name]
	delete(n.listeners, name)
	delete(n.servers, name)
	n.mu.Unlock()
	if ok {
		gs.Stop()
	}
}

// DialOption routes dials to the listener registered under the target's name.
func (n *Network) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
		n.mu.Lock()
		lis, ok := n.listeners[addr]
		n.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("bufconn: no mock rvasp at %q", addr)
		}
		return lis.DialContext(ctx)
	})
}

// Close stops every server.
func (n *Network) Close() {
	n.mu.Lock()
	servers := n.servers
	n.servers = make(map[string]*grpc.Server)
	n.listeners = make(map[string]*bufconn.Listener)
	n.mu.Unlock()
	for _, gs := range servers {
		gs.Stop()
	}
}
