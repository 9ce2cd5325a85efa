package domain

// Socket event names exchanged with browser sessions.
const (
	EventVaspContext        = "vasp_context"
	EventTransactionRequest = "transaction_request"
	EventAccountRequest     = "account_request"

	EventVaspLogMessage = "vasp_log_message"
	EventTransaction    = "transaction"
	EventAccount        = "account"
)

// Category is the relay's view of an rVASP message category.
type Category int

const (
	CategoryLedger Category = iota
	CategoryDirectory
	CategoryProtocol
	CategoryLedgerChain
	CategoryError
	CategoryUnknown
)

func (c Category) String() string {
	switch c {
	case CategoryLedger:
		return "LEDGER"
	case CategoryDirectory:
		return "DIRECTORY"
	case CategoryProtocol:
		return "PROTOCOL"
	case CategoryLedgerChain:
		return "LEDGER_CHAIN"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// VaspLogMessage is published as "vasp_log_message".
type VaspLogMessage struct {
	VaspID             string `json:"vasp_id"`
	Timestamp          string `json:"timestamp"`
	Message            string `json:"message"`
	MessageUnencrypted string `json:"message_unencrypted"`
	ColorCode          string `json:"color_code"`
}

// Transaction is published as "transaction". IVMS101Data carries the raw transfer
// reply as JSON.
type Transaction struct {
	Timestamp                  string `json:"timestamp"`
	TransactionID              string `json:"transaction_id"`
	OriginatingWallet          string `json:"originating_wallet"`
	OriginatingVaspID          string `json:"originating_vasp_id"`
	OriginatingVaspDisplayName string `json:"originating_vasp_display_name"`
	BeneficiaryWallet          string `json:"beneficiary_wallet"`
	BeneficiaryVaspID          string `json:"beneficiary_vasp_id"`
	BeneficiaryVaspDisplayName string `json:"beneficiary_vasp_display_name"`
	IVMS101Data                string `json:"ivms101Data"`
}

// AccountStatus is published as "account" in reply to an account_request.
type AccountStatus struct {
	VaspID        string  `json:"vasp_id"`
	Timestamp     string  `json:"timestamp"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	WalletAddress string  `json:"wallet_address"`
	Balance       float64 `json:"balance"`
	Completed     uint64  `json:"completed"`
	Pending       uint64  `json:"pending"`
}

// TransactionRequest is the browser's "transaction_request" payload.
type TransactionRequest struct {
	ContextID           string  `json:"context_id"`
	OriginatorVaspID    string  `json:"originator_vasp_id"`
	OriginatorWalletID  string  `json:"originator_wallet_id"`
	BeneficiaryVaspID   string  `json:"beneficiary_vasp_id"`
	BeneficiaryWalletID string  `json:"beneficiary_wallet_id"`
	CryptoType          string  `json:"crypto_type"`
	Amount              float64 `json:"amount"`
}

// AccountRequest is the browser's "account_request" payload.
type AccountRequest struct {
	Account        string `json:"account"`
	NoTransactions bool   `json:"no_transactions"`
}
