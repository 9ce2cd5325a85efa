package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/server/interceptors"
)

// DefaultTimeout bounds dials and sends when the Dialer leaves them unset.
const DefaultTimeout = 30 * time.Second

// Dialer opens LiveUpdates streams to rVASP servers.
type Dialer struct {
	// DialTimeout bounds connection establishment and stream open.
	DialTimeout time.Duration
	// SendTimeout bounds each Send when the caller's context has no earlier deadline.
	SendTimeout time.Duration
	// TLS enables transport security; CAFile optionally pins the root pool.
	TLS    bool
	CAFile string
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// Options are appended to the dial options (e.g. a bufconn context dialer in tests).
	Options []grpc.DialOption
}

func (d *Dialer) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

func (d *Dialer) credentials() (credentials.TransportCredentials, error) {
	if !d.TLS {
		return insecure.NewCredentials(), nil
	}
	conf := &tls.Config{MinVersion: tls.VersionTLS12}
	if d.CAFile != "" {
		pem, err := os.ReadFile(d.CAFile)
		if err != nil {
			return nil, fmt.Errorf("rvasp: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("rvasp: no certificates in %s", d.CAFile)
		}
		conf.RootCAs = pool
	}
	return credentials.NewTLS(conf), nil
}

// Dial connects to address, waits for the connection to become ready, and opens the
// LiveUpdates stream. Context values (e.g. interceptors.WithSession) are carried onto
// the stream, but the stream outlives ctx and is only torn down by Close.
func (d *Dialer) Dial(ctx context.Context, address string) (*Stream, error) {
	creds, err := d.credentials()
	if err != nil {
		return nil, &domain.ConnectionError{Address: address, Err: err}
	}

	log := d.logger()
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithChainStreamInterceptor(
			interceptors.SessionStreamClient(),
			interceptors.LoggingStreamClient(log),
		),
	}
	opts = append(opts, d.Options...)

	cc, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, &domain.ConnectionError{Address: address, Err: err}
	}

	timeout := d.DialTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialCtx, cancelDial := context.WithTimeout(ctx, timeout)
	defer cancelDial()

	if err := waitReady(dialCtx, cc); err != nil {
		cc.Close()
		return nil, &domain.ConnectionError{Address: address, Err: err}
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stream, err := api.NewTRISADemoClient(cc).LiveUpdates(streamCtx)
	if err != nil {
		cancel()
		cc.Close()
		return nil, &domain.ConnectionError{Address: address, Err: err}
	}

	log.WithField("address", address).Debug("rvasp: live updates stream open")
	return &Stream{
		address:     address,
		cc:          cc,
		stream:      stream,
		cancel:      cancel,
		sendTimeout: d.SendTimeout,
	}, nil
}

// waitReady blocks until cc is READY or ctx is done.
func waitReady(ctx context.Context, cc *grpc.ClientConn) error {
	cc.Connect()
	for {
		state := cc.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("client connection shut down")
		}
		if !cc.WaitForStateChange(ctx, state) {
			return fmt.Errorf("not ready (last state %s): %w", state, ctx.Err())
		}
	}
}

// Stream is an open LiveUpdates stream. Send may be called from many goroutines; Recv
// must be called from a single drain goroutine.
type Stream struct {
	address     string
	cc          *grpc.ClientConn
	stream      api.TRISADemo_LiveUpdatesClient
	cancel      context.CancelFunc
	sendTimeout time.Duration

	sendMu    sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
	closeErr  error
}

// Address is the host:port the stream was dialed to.
func (s *Stream) Address() string {
	return s.address
}

// Send pushes one command. A send that cannot complete before ctx is done tears the
// stream down, since a blocked gRPC send cannot be abandoned safely.
func (s *Stream) Send(ctx context.Context, cmd *api.Command) error {
	if s.closed.Load() {
		return &domain.StreamError{Address: s.address, Err: domain.ErrClosed}
	}

	timeout := s.sendTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	errc := make(chan error, 1)
	go func() { errc <- s.stream.Send(cmd) }()

	select {
	case err := <-errc:
		if err != nil {
			return &domain.StreamError{Address: s.address, Err: err}
		}
		return nil
	case <-ctx.Done():
		s.cancel()
		<-errc
		return &domain.StreamError{Address: s.address, Err: ctx.Err()}
	}
}

// Recv returns the next message. It returns io.EOF when the server ends the stream
// cleanly and a *domain.StreamError for any other failure, wrapping domain.ErrClosed
// when the stream was closed locally.
func (s *Stream) Recv() (*api.Message, error) {
	msg, err := s.stream.Recv()
	if err == nil {
		return msg, nil
	}
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if s.closed.Load() && status.Code(err) == codes.Canceled {
		return nil, &domain.StreamError{Address: s.address, Err: domain.ErrClosed}
	}
	return nil, &domain.StreamError{Address: s.address, Err: err}
}

// Close cancels the stream and closes the connection. It is idempotent.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.cancel()
		s.closeErr = s.cc.Close()
	})
	return s.closeErr
}
