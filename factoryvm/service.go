// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	"github.com/mr-tron/base58"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/receipts"
)

const (
	// Endpoint is the path the Service is served under.
	Endpoint = "/ext/" + Name
	// StaticEndpoint is the path the StaticService is served under.
	StaticEndpoint = Endpoint + "/static"

	defaultHistoryLimit = 100
)

var errBadEncoding = errors.New("couldn't decode hex argument")

// Service is the API service for this VM
type Service struct{ vm *VM }

// NewHandler returns the JSON-RPC handler serving [vm] under the service
// name Name.
func NewHandler(vm *VM) (http.Handler, error) {
	return newServer(&Service{vm: vm})
}

func newServer(service interface{}) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(service, Name)
}

// SubmitTransactionArgs are the arguments to SubmitTransaction
type SubmitTransactionArgs struct {
	Signer   contract.AccountID `json:"signer"`
	Receiver contract.AccountID `json:"receiver"`
	Method   string             `json:"method"`
	// Args is the hex encoded call input
	Args    string      `json:"args"`
	Gas     json.Uint64 `json:"gas"`
	Deposit string      `json:"deposit"`
}

// SubmitTransactionReply is the reply from SubmitTransaction
type SubmitTransactionReply struct {
	TxID ids.ID `json:"txID"`
}

// SubmitTransaction queues a function call on behalf of the signer
func (s *Service) SubmitTransaction(_ *http.Request, args *SubmitTransactionArgs, reply *SubmitTransactionReply) error {
	input, err := decodeHex(args.Args)
	if err != nil {
		return err
	}
	deposit, err := contract.ParseAmount(args.Deposit)
	if err != nil {
		return err
	}
	txID, err := s.vm.SubmitTransaction(TxRequest{
		Signer:   args.Signer,
		Receiver: args.Receiver,
		Method:   args.Method,
		Args:     input,
		Gas:      contract.Gas(args.Gas),
		Deposit:  deposit,
	})
	if err != nil {
		return err
	}
	reply.TxID = txID
	return nil
}

// TxIDArgs identify a transaction
type TxIDArgs struct {
	TxID ids.ID `json:"txID"`
}

// OutcomeReply is one receipt outcome
type OutcomeReply struct {
	ReceiptID       ids.ID             `json:"receiptID"`
	Predecessor     contract.AccountID `json:"predecessor"`
	Receiver        contract.AccountID `json:"receiver"`
	Refund          bool               `json:"refund"`
	Status          string             `json:"status"`
	Value           string             `json:"value,omitempty"`
	ReturnedReceipt *ids.ID            `json:"returnedReceipt,omitempty"`
	Failure         string             `json:"failure,omitempty"`
	Logs            []string           `json:"logs"`
	GasBurnt        json.Uint64        `json:"gasBurnt"`
	Produced        []ids.ID           `json:"produced"`
	Height          json.Uint64        `json:"height"`
	Timestamp       json.Uint64        `json:"timestamp"`
}

func newOutcomeReply(o *Outcome) (OutcomeReply, error) {
	reply := OutcomeReply{
		ReceiptID:   o.ReceiptID,
		Predecessor: o.Predecessor,
		Receiver:    o.Receiver,
		Refund:      o.Refund,
		Status:      o.Status.String(),
		Failure:     o.Failure,
		Logs:        o.Logs,
		GasBurnt:    json.Uint64(o.GasBurnt),
		Produced:    o.Produced,
		Height:      json.Uint64(o.Height),
		Timestamp:   json.Uint64(o.Timestamp),
	}
	switch o.Status {
	case StatusSuccessValue:
		value, err := formatting.EncodeWithChecksum(formatting.Hex, o.Value)
		if err != nil {
			return reply, err
		}
		reply.Value = value
	case StatusSuccessReceipt:
		returned := o.ReturnedReceipt
		reply.ReturnedReceipt = &returned
	}
	return reply, nil
}

// GetOutcomeReply is the reply from GetOutcome
type GetOutcomeReply struct {
	// Pending is set while the transaction has not settled.
	Pending bool          `json:"pending"`
	Outcome *OutcomeReply `json:"outcome,omitempty"`
}

// GetOutcome returns the final outcome of a transaction
func (s *Service) GetOutcome(_ *http.Request, args *TxIDArgs, reply *GetOutcomeReply) error {
	o, err := s.vm.Outcome(args.TxID)
	if errors.Is(err, ErrPending) {
		reply.Pending = true
		return nil
	}
	if err != nil {
		return err
	}
	outcome, err := newOutcomeReply(o)
	if err != nil {
		return err
	}
	reply.Outcome = &outcome
	return nil
}

// GetReceiptsReply is the reply from GetReceipts
type GetReceiptsReply struct {
	Signer   contract.AccountID `json:"signer"`
	Receiver contract.AccountID `json:"receiver"`
	Method   string             `json:"method"`
	Nonce    json.Uint64        `json:"nonce"`
	Receipts []OutcomeReply     `json:"receipts"`
}

// GetReceipts returns every executed receipt of a transaction, in execution
// order
func (s *Service) GetReceipts(_ *http.Request, args *TxIDArgs, reply *GetReceiptsReply) error {
	tx, outcomes, err := s.vm.Receipts(args.TxID)
	if err != nil {
		return err
	}
	reply.Signer = tx.Signer
	reply.Receiver = tx.Receiver
	reply.Method = tx.Method
	reply.Nonce = json.Uint64(tx.Nonce)
	reply.Receipts = make([]OutcomeReply, 0, len(outcomes))
	for _, o := range outcomes {
		outcome, err := newOutcomeReply(o)
		if err != nil {
			return err
		}
		reply.Receipts = append(reply.Receipts, outcome)
	}
	return nil
}

// ViewArgs are the arguments to View
type ViewArgs struct {
	Account contract.AccountID `json:"account"`
	Method  string             `json:"method"`
	// Args is the hex encoded call input
	Args string `json:"args"`
}

// ViewReply is the reply from View
type ViewReply struct {
	Value string   `json:"value"`
	Logs  []string `json:"logs"`
}

// View calls a contract method without persisting anything
func (s *Service) View(_ *http.Request, args *ViewArgs, reply *ViewReply) error {
	input, err := decodeHex(args.Args)
	if err != nil {
		return err
	}
	value, logs, err := s.vm.View(args.Account, args.Method, input)
	if err != nil {
		return err
	}
	reply.Value, err = formatting.EncodeWithChecksum(formatting.Hex, value)
	reply.Logs = logs
	return err
}

// AccountArgs identify an account
type AccountArgs struct {
	Account contract.AccountID `json:"account"`
}

// GetAccountReply is the reply from GetAccount
type GetAccountReply struct {
	Account contract.AccountID `json:"account"`
	Balance contract.Amount    `json:"balance"`
	Nonce   json.Uint64        `json:"nonce"`
	// CodeHash is the base58 SHA-256 of the deployed code, empty when there
	// is none.
	CodeHash string `json:"codeHash"`
}

// GetAccount returns the balance, nonce and code hash of an account
func (s *Service) GetAccount(_ *http.Request, args *AccountArgs, reply *GetAccountReply) error {
	acc, err := s.vm.GetAccount(args.Account)
	if err != nil {
		return err
	}
	reply.Account = acc.ID
	reply.Balance = contract.NewAmount(acc.Balance)
	reply.Nonce = json.Uint64(acc.Nonce)
	if acc.HasCode() {
		reply.CodeHash = base58.Encode(acc.CodeHash[:])
	}
	return nil
}

// GetAccountHistoryArgs are the arguments to GetAccountHistory
type GetAccountHistoryArgs struct {
	Account contract.AccountID `json:"account"`
	Limit   json.Uint32        `json:"limit"`
	Offset  json.Uint32        `json:"offset"`
}

// GetAccountHistoryReply is the reply from GetAccountHistory
type GetAccountHistoryReply struct {
	Receipts []receipts.Entry `json:"receipts"`
}

// GetAccountHistory returns the journaled receipts an account sent or
// received, most recent first
func (s *Service) GetAccountHistory(r *http.Request, args *GetAccountHistoryArgs, reply *GetAccountHistoryReply) error {
	limit := int(args.Limit)
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	entries, err := s.vm.AccountHistory(r.Context(), args.Account, limit, int(args.Offset))
	if err != nil {
		return err
	}
	reply.Receipts = entries
	return nil
}

// StepReply is the reply from Step
type StepReply struct {
	Height   json.Uint64 `json:"height"`
	Executed []ids.ID    `json:"executed"`
	Pending  json.Uint32 `json:"pending"`
}

// Step executes the receipts that are ready now
func (s *Service) Step(r *http.Request, _ *struct{}, reply *StepReply) error {
	res, err := s.vm.Step(r.Context())
	if err != nil {
		return err
	}
	reply.Height = json.Uint64(res.Height)
	reply.Executed = res.Executed
	reply.Pending = json.Uint32(res.Pending)
	return nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := formatting.Decode(formatting.Hex, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadEncoding, err)
	}
	return b, nil
}
