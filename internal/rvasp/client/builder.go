// Package client dials rVASP LiveUpdates streams and builds the commands sent on them.
package client

import (
	"sync/atomic"

	"trisa-demo/relay/internal/rvasp/api"
)

// Builder creates sequenced commands for one client identity. The sequence starts at 1
// and is never reset, so ids stay unique across reconnects made with the same builder.
type Builder struct {
	client string
	seq    atomic.Uint64
}

// NewBuilder returns a Builder that stamps every command with client.
func NewBuilder(client string) *Builder {
	return &Builder{client: client}
}

// Client returns the client identifier stamped on commands.
func (b *Builder) Client() string {
	return b.client
}

func (b *Builder) next(rpc api.RPC) *api.Command {
	return &api.Command{
		Type:   rpc,
		Id:     b.seq.Add(1),
		Client: b.client,
	}
}

// Account requests the status of account, optionally without its transactions.
func (b *Builder) Account(account string, noTransactions bool) *api.Command {
	cmd := b.next(api.RPC_ACCOUNT)
	cmd.Request = &api.Command_Account{Account: &api.AccountRequest{
		Account:        account,
		NoTransactions: noTransactions,
	}}
	return cmd
}

// Transfer wraps req in a TRANSFER command. The amount is not validated here.
func (b *Builder) Transfer(req *api.TransferRequest) *api.Command {
	cmd := b.next(api.RPC_TRANSFER)
	if req == nil {
		req = &api.TransferRequest{}
	}
	cmd.Request = &api.Command_Transfer{Transfer: req}
	return cmd
}

// NoOp opens a listen-only stream: the server registers the client and only pushes
// updates.
func (b *Builder) NoOp() *api.Command {
	return b.next(api.RPC_NORPC)
}
