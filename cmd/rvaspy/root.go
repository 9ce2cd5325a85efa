package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"

	"trisa-demo/relay/internal/rvasp/api"
	"trisa-demo/relay/internal/rvasp/client"
)

type options struct {
	address string
	client  string
	timeout time.Duration
	tls     bool
	caFile  string

	// dialOptions are appended to every dial; tests route dials through bufconn.
	dialOptions []grpc.DialOption
}

func newRootCmd(dialOptions ...grpc.DialOption) *cobra.Command {
	opts := &options{dialOptions: dialOptions}
	rootCmd := &cobra.Command{
		Use:          "rvaspy",
		Short:        "Talk to an rVASP LiveUpdates stream",
		Long:         "rvaspy opens a LiveUpdates stream to an rVASP server, sends one command and prints the replies as JSON lines.",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.address, "addr", "a", "localhost:4434", "rVASP gRPC address")
	flags.StringVar(&opts.client, "client", "rvaspy", "client name stamped on commands")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "dial and send timeout")
	flags.BoolVar(&opts.tls, "tls", false, "connect with TLS")
	flags.StringVar(&opts.caFile, "ca", "", "PEM CA bundle for TLS")

	rootCmd.AddCommand(
		newAccountCmd(opts),
		newTransferCmd(opts),
		newListenCmd(opts),
	)
	return rootCmd
}

func (o *options) dial(ctx context.Context) (*client.Stream, error) {
	if o.caFile != "" && !o.tls {
		return nil, errors.New("--ca requires --tls")
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	d := &client.Dialer{
		DialTimeout: o.timeout,
		SendTimeout: o.timeout,
		TLS:         o.tls,
		CAFile:      o.caFile,
		Logger:      log,
		Options:     o.dialOptions,
	}
	return d.Dial(ctx, o.address)
}

// exchange sends cmd and prints replies until done reports the exchange finished or
// the stream ends. done may be nil to print until the stream or ctx ends.
func (o *options) exchange(cmd *cobra.Command, command *api.Command, done func(*api.Message) (bool, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := o.dial(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	go func() {
		<-ctx.Done()
		stream.Close()
	}()

	if err := stream.Send(ctx, command); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		line, err := protojson.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		if _, err := out.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
		if done == nil || msg.Id != command.Id {
			continue
		}
		if finished, err := done(msg); finished {
			return err
		}
	}
}

func newAccountCmd(opts *options) *cobra.Command {
	var noTransactions bool
	cmd := &cobra.Command{
		Use:   "account <email-or-wallet>",
		Short: "Print the status of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := client.NewBuilder(opts.client).Account(args[0], noTransactions)
			return opts.exchange(cmd, command, func(msg *api.Message) (bool, error) {
				if msg.Type != api.RPC_ACCOUNT {
					return false, nil
				}
				if e := msg.GetAccount().GetError(); e != nil {
					return true, e
				}
				return true, nil
			})
		},
	}
	cmd.Flags().BoolVar(&noTransactions, "no-transactions", false, "omit the transaction history")
	return cmd
}

func newTransferCmd(opts *options) *cobra.Command {
	var req api.TransferRequest
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send a transfer and follow its live updates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Amount <= 0 {
				return errors.New("--amount must be positive")
			}
			req.CheckBeneficiary = req.BeneficiaryVasp != ""
			command := client.NewBuilder(opts.client).Transfer(&req)
			return opts.exchange(cmd, command, func(msg *api.Message) (bool, error) {
				if msg.Type != api.RPC_TRANSFER {
					return false, nil
				}
				if e := msg.GetTransfer().GetError(); e != nil {
					return true, e
				}
				return true, nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Account, "account", "", "originator email or wallet address")
	flags.StringVar(&req.Beneficiary, "beneficiary", "", "beneficiary email or wallet address")
	flags.Float32Var(&req.Amount, "amount", 0, "amount to transfer")
	flags.StringVar(&req.OriginatingVasp, "originator-vasp", "", "originating VASP id")
	flags.StringVar(&req.BeneficiaryVasp, "beneficiary-vasp", "", "beneficiary VASP id; checked against the beneficiary wallet when set")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("beneficiary")
	_ = cmd.MarkFlagRequired("originator-vasp")
	return cmd
}

func newListenCmd(opts *options) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Register as a listener and print pushed updates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			cmd.SetContext(ctx)
			return opts.exchange(cmd, client.NewBuilder(opts.client).NoOp(), nil)
		},
	}
	cmd.Flags().DurationVar(&duration, "for", 0, "stop listening after this long (0 listens until interrupted)")
	return cmd
}
