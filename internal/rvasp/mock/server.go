// Package mock is an in-process rVASP TRISADemo server. It acknowledges listen-only
// commands, answers account requests from an in-memory ledger, and simulates the TRISA
// exchange for transfers with a scripted series of live updates.
package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/rvasp/api"
)

// Server implements api.TRISADemoServer for a single named VASP.
type Server struct {
	api.UnimplementedTRISADemoServer

	name     string
	ledger   *Ledger
	maxPause time.Duration
	log      logrus.FieldLogger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) { s.log = log }
}

// WithPause sets the upper bound of the random pause between simulated protocol steps.
// The default of zero sends every update immediately.
func WithPause(max time.Duration) Option {
	return func(s *Server) { s.maxPause = max }
}

// New returns a server that acts as the VASP called name.
func New(name string, ledger *Ledger, opts ...Option) *Server {
	s := &Server{
		name:   name,
		ledger: ledger,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ledger == nil {
		s.ledger = NewLedger()
	}
	return s
}

// Name is the VASP common name this server answers for.
func (s *Server) Name() string {
	return s.name
}

// LiveUpdates serves one client until it closes its side of the stream.
func (s *Server) LiveUpdates(stream api.TRISADemo_LiveUpdatesServer) error {
	var (
		client   string
		messages uint64
	)
	ctx := stream.Context()
	for {
		cmd, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.WithField("client", client).Info("live updates connection closed")
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			s.log.WithError(err).WithField("client", client).Warn("live updates connection dropped")
			return nil
		}

		if client == "" {
			client = cmd.Client
			s.log.WithField("client", client).Info("connected to live updates")
		} else if client != cmd.Client {
			s.log.WithFields(logrus.Fields{"client": client, "request_from": cmd.Client}).Warn("unexpected client")
		}
		messages++
		s.log.WithFields(logrus.Fields{"client": client, "message": messages, "type": cmd.Type.String()}).Debug("received command")

		switch cmd.Type {
		case api.RPC_NORPC:
			err = stream.Send(&api.Message{
				Type:      api.RPC_NORPC,
				Id:        cmd.Id,
				Update:    fmt.Sprintf("command %d acknowledged", cmd.Id),
				Timestamp: s.ledger.now(),
			})
		case api.RPC_ACCOUNT:
			err = stream.Send(&api.Message{
				Type:      api.RPC_ACCOUNT,
				Id:        cmd.Id,
				Timestamp: s.ledger.now(),
				Reply:     &api.Message_Account{Account: s.ledger.Status(cmd.GetAccount())},
			})
		case api.RPC_TRANSFER:
			err = s.simulateTransfer(ctx, stream, cmd)
		default:
			s.log.WithField("type", cmd.Type.String()).Warn("unhandled command type")
		}
		if err != nil {
			s.log.WithError(err).WithField("client", client).Error("could not send message")
			return err
		}
	}
}

// updater sends NORPC live updates tagged with the originating command id.
type updater struct {
	stream api.TRISADemo_LiveUpdatesServer
	cmd    *api.Command
	now    func() string
}

func (u *updater) send(category api.MessageCategory, format string, args ...any) error {
	return u.stream.Send(&api.Message{
		Type:      api.RPC_NORPC,
		Id:        u.cmd.Id,
		Update:    fmt.Sprintf(format, args...),
		Category:  category,
		Timestamp: u.now(),
	})
}

func (s *Server) transferError(stream api.TRISADemo_LiveUpdatesServer, cmd *api.Command, code int32, msg string) error {
	return stream.Send(&api.Message{
		Type:      api.RPC_TRANSFER,
		Id:        cmd.Id,
		Timestamp: s.ledger.now(),
		Category:  api.MessageCategory_ERROR,
		Reply:     &api.Message_Transfer{Transfer: &api.TransferReply{Error: api.Errorf(code, msg)}},
	})
}

func (s *Server) pause(ctx context.Context) error {
	if s.maxPause <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(rand.N(s.maxPause))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Server) simulateTransfer(ctx context.Context, stream api.TRISADemo_LiveUpdatesServer, cmd *api.Command) error {
	transfer := cmd.GetTransfer()
	if transfer == nil {
		return s.transferError(stream, cmd, api.ErrInternal, "transfer command without transfer request")
	}
	if transfer.OriginatingVasp != s.name {
		return s.transferError(stream, cmd, api.ErrWrongVASP, "message sent to the wrong originator VASP")
	}

	originator, ok := s.ledger.Lookup(transfer.Account)
	if !ok {
		return s.transferError(stream, cmd, api.ErrNotFound, "account not found")
	}
	u := &updater{stream: stream, cmd: cmd, now: s.ledger.now}
	if err := u.send(api.MessageCategory_LEDGER, "account %s accessed successfully", originator.Email); err != nil {
		return err
	}

	beneficiary, ok := s.ledger.Lookup(transfer.Beneficiary)
	if !ok {
		return s.transferError(stream, cmd, api.ErrNotFound, "beneficiary wallet not found")
	}
	if transfer.CheckBeneficiary && transfer.BeneficiaryVasp != beneficiary.Provider {
		return s.transferError(stream, cmd, api.ErrWrongVASP, "beneficiary wallet does not match beneficiary vasp")
	}

	steps := []struct {
		category api.MessageCategory
		update   string
	}{
		{api.MessageCategory_BLOCKCHAIN, fmt.Sprintf("wallet %s (%s) provided by %s", beneficiary.WalletAddress, beneficiary.Email, beneficiary.Provider)},
		{api.MessageCategory_TRISAP2P, "beginning TRISA protocol for identity exchange"},
		{api.MessageCategory_TRISADS, "VASP public key not cached, looking up TRISA directory service"},
		{api.MessageCategory_TRISAP2P, fmt.Sprintf("sending handshake request to %s", beneficiary.Provider)},
		{api.MessageCategory_TRISAP2P, fmt.Sprintf("%s verified, secure TRISA connection established", beneficiary.Provider)},
		{api.MessageCategory_BLOCKCHAIN, fmt.Sprintf("identity for beneficiary %q confirmed - beginning transaction", beneficiary.Email)},
		{api.MessageCategory_BLOCKCHAIN, fmt.Sprintf("transaction appended to blockchain, sending hash to %s", beneficiary.Provider)},
	}
	for _, step := range steps {
		if err := u.send(step.category, "%s", step.update); err != nil {
			return err
		}
		if err := s.pause(ctx); err != nil {
			return err
		}
	}

	tx := &api.Transaction{
		Originator: &api.Account{
			WalletAddress: originator.WalletAddress,
			Email:         originator.Email,
			Provider:      s.name,
		},
		Beneficiary: &api.Account{
			WalletAddress: beneficiary.WalletAddress,
			Email:         beneficiary.Email,
			Provider:      beneficiary.Provider,
		},
		Amount:    transfer.Amount,
		Timestamp: s.ledger.now(),
	}
	s.ledger.Settle(transfer.Account, transfer.Beneficiary, tx)

	return stream.Send(&api.Message{
		Type:      api.RPC_TRANSFER,
		Id:        cmd.Id,
		Timestamp: tx.Timestamp,
		Category:  api.MessageCategory_LEDGER,
		Reply:     &api.Message_Transfer{Transfer: &api.TransferReply{Transaction: tx}},
	})
}
