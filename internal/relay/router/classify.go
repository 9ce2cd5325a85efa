package router

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"

	"trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/rvasp/api"
)

var colors = map[domain.Category]string{
	domain.CategoryLedger:      "888888",
	domain.CategoryDirectory:   "99ccff",
	domain.CategoryProtocol:    "0080ff",
	domain.CategoryLedgerChain: "00cc66",
	domain.CategoryError:       "cc0000",
}

const defaultColor = "ffffff"

// ivms101JSON renders transfer replies with proto field names in lowerCamelCase.
var ivms101JSON = protojson.MarshalOptions{Multiline: true, Indent: "  "}

// Color returns the console color for a category; unknown categories are white.
func Color(c domain.Category) string {
	if color, ok := colors[c]; ok {
		return color
	}
	return defaultColor
}

// CategoryOf maps an rVASP message category onto the relay's categories.
func CategoryOf(c api.MessageCategory) domain.Category {
	switch c {
	case api.MessageCategory_LEDGER:
		return domain.CategoryLedger
	case api.MessageCategory_TRISADS:
		return domain.CategoryDirectory
	case api.MessageCategory_TRISAP2P:
		return domain.CategoryProtocol
	case api.MessageCategory_BLOCKCHAIN:
		return domain.CategoryLedgerChain
	case api.MessageCategory_ERROR:
		return domain.CategoryError
	default:
		return domain.CategoryUnknown
	}
}

// Origin describes the binding a message arrived on.
type Origin struct {
	SessionID string
	Context   domain.VaspContext
	// DisplayName is the bound VASP's display name.
	DisplayName string
	// Correlate returns the transaction id recorded for a command id, or "".
	Correlate func(commandID uint64) string
	// Resolve returns the display name for a counterparty VASP id, or "".
	Resolve func(vaspID string) string
}

func (o Origin) correlate(id uint64) string {
	if o.Correlate == nil {
		return ""
	}
	return o.Correlate(id)
}

func (o Origin) resolve(vaspID string) string {
	if o.Resolve != nil {
		if name := o.Resolve(vaspID); name != "" {
			return name
		}
	}
	return vaspID
}

// Classify turns an inbound message into the event name and payload published to the
// origin's room. It never fails: a TRANSFER reply carrying a transaction becomes a
// transaction, an ACCOUNT reply becomes an account status, and everything else
// (including TRANSFER errors) becomes a console log line. now stamps messages that
// arrive without a timestamp.
func Classify(origin Origin, msg *api.Message, now time.Time) (string, any) {
	if msg == nil {
		return logMessage(origin, now.Format(time.RFC3339), "", domain.CategoryUnknown)
	}
	ts := msg.Timestamp
	if ts == "" {
		ts = now.Format(time.RFC3339)
	}

	switch msg.Type {
	case api.RPC_TRANSFER:
		reply := msg.GetTransfer()
		if tx := reply.GetTransaction(); tx != nil {
			return domain.EventTransaction, transaction(origin, msg, tx, ts)
		}
		if e := reply.GetError(); e != nil {
			return logMessage(origin, ts, fmt.Sprintf("transfer failed: %s", e.GetMessage()), domain.CategoryError)
		}
		return logMessage(origin, ts, msg.Update, CategoryOf(msg.Category))
	case api.RPC_ACCOUNT:
		reply := msg.GetAccount()
		if reply == nil {
			return logMessage(origin, ts, msg.Update, CategoryOf(msg.Category))
		}
		if e := reply.GetError(); e != nil {
			return logMessage(origin, ts, fmt.Sprintf("account request failed: %s", e.GetMessage()), domain.CategoryError)
		}
		return domain.EventAccount, domain.AccountStatus{
			VaspID:        origin.Context.VaspID,
			Timestamp:     ts,
			Name:          reply.Name,
			Email:         reply.Email,
			WalletAddress: reply.WalletAddress,
			Balance:       float64(reply.Balance),
			Completed:     reply.Completed,
			Pending:       reply.Pending,
		}
	default:
		return logMessage(origin, ts, msg.Update, CategoryOf(msg.Category))
	}
}

func logMessage(origin Origin, ts, text string, category domain.Category) (string, any) {
	return domain.EventVaspLogMessage, domain.VaspLogMessage{
		VaspID:             origin.Context.VaspID,
		Timestamp:          ts,
		Message:            "",
		MessageUnencrypted: text,
		ColorCode:          Color(category),
	}
}

func transaction(origin Origin, msg *api.Message, tx *api.Transaction, ts string) domain.Transaction {
	if tx.Timestamp != "" {
		ts = tx.Timestamp
	}
	out := domain.Transaction{
		Timestamp:         ts,
		TransactionID:     origin.correlate(msg.Id),
		OriginatingWallet: tx.GetOriginator().GetWalletAddress(),
		BeneficiaryWallet: tx.GetBeneficiary().GetWalletAddress(),
	}
	if raw, err := ivms101JSON.Marshal(msg.GetTransfer()); err == nil {
		out.IVMS101Data = string(raw)
	}

	self, selfName := origin.Context.VaspID, origin.DisplayName
	if selfName == "" {
		selfName = origin.resolve(self)
	}
	if origin.Context.Role == domain.RoleBeneficiary {
		peer := tx.GetOriginator().GetProvider()
		out.OriginatingVaspID, out.OriginatingVaspDisplayName = peer, origin.resolve(peer)
		out.BeneficiaryVaspID, out.BeneficiaryVaspDisplayName = self, selfName
	} else {
		peer := tx.GetBeneficiary().GetProvider()
		out.OriginatingVaspID, out.OriginatingVaspDisplayName = self, selfName
		out.BeneficiaryVaspID, out.BeneficiaryVaspDisplayName = peer, origin.resolve(peer)
	}
	return out
}
