// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/factoryvm/contract"
	"github.com/ava-labs/factoryvm/receipts"
)

const (
	Name    = "factoryvm"
	Version = "v1.0.0"
)

var (
	ErrNotInitialized     = errors.New("vm is not initialized")
	ErrGenesisMismatch    = errors.New("database was initialized with a different genesis")
	ErrInvalidGas         = errors.New("prepaid gas must be positive and at most the maximum")
	ErrInsufficientFunds  = errors.New("signer cannot cover the attached deposit")
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrPending            = errors.New("transaction has not settled yet")
	ErrNoJournal          = errors.New("no receipt journal configured")
)

// Journal receives the outcomes of every executed step.
type Journal interface {
	Record(ctx context.Context, entries []receipts.Entry) error
	ListByAccount(ctx context.Context, account string, limit, offset int) ([]receipts.Entry, error)
}

// Option configures a VM.
type Option func(*VM)

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(vm *VM) { vm.config = config }
}

// WithEngine replaces the default contract engine.
func WithEngine(engine *Engine) Option {
	return func(vm *VM) { vm.engine = engine }
}

// WithJournal records step outcomes into [j].
func WithJournal(j Journal) Option {
	return func(vm *VM) { vm.journal = j }
}

// WithLogger replaces the root logger.
func WithLogger(logger log.Logger) Option {
	return func(vm *VM) { vm.log = logger }
}

// VM executes transactions against the ledger. Transactions are turned into
// receipts that execute in steps: every receipt queued before a step starts
// runs in that step, in FIFO order, and whatever it produces runs in a later
// step.
type VM struct {
	lock sync.Mutex

	config  Config
	engine  *Engine
	journal Journal
	log     log.Logger
	clock   mockable.Clock

	state  State
	queue  *queue
	height uint64
}

// New returns an uninitialized VM.
func New(opts ...Option) *VM {
	vm := &VM{
		config: DefaultConfig(),
		log:    log.New("module", Name),
		queue:  newQueue(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.engine == nil {
		vm.engine = DefaultEngine()
	}
	return vm
}

// Initialize this vm on top of [db]. An empty database is populated from
// [genesisBytes]; an initialized one must have been built from the same
// genesis.
func (vm *VM) Initialize(db database.Database, genesisBytes []byte) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	log.Info("Initializing factory VM", "Version", Version)

	vm.state = NewState(db)
	id := genesisID(genesisBytes)

	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		storedID, err := vm.state.GetGenesisID()
		if err != nil {
			return err
		}
		if storedID != id {
			return fmt.Errorf("%w: have %s, got %s", ErrGenesisMismatch, storedID, id)
		}
		vm.height, err = vm.state.GetHeight()
		return err
	}

	genesis, err := ParseGenesis(genesisBytes)
	if err != nil {
		return err
	}
	if err := genesis.apply(vm.state, vm.engine); err != nil {
		log.Error("error while applying genesis", "err", err)
		return err
	}
	if err := vm.state.SetInitialized(id); err != nil {
		return fmt.Errorf("error while setting db to initialized: %w", err)
	}

	// Flush VM's database to underlying db
	if err := vm.state.Commit(); err != nil {
		log.Error("error while committing db", "err", err)
		return err
	}
	vm.log.Info("applied genesis", "genesis", id, "accounts", len(genesis.Accounts))
	return nil
}

// SubmitTransaction accepts [req] and queues its root receipt. Nothing in it
// executes before the next step.
func (vm *VM) SubmitTransaction(req TxRequest) (ids.ID, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return ids.Empty, ErrNotInitialized
	}
	if err := req.Receiver.Validate(); err != nil {
		return ids.Empty, err
	}
	if req.Gas == 0 || req.Gas > MaxPrepaidGas {
		return ids.Empty, fmt.Errorf("%w: %s", ErrInvalidGas, req.Gas)
	}
	if req.Method == "" {
		return ids.Empty, fmt.Errorf("%w: empty method name", contract.ErrInvalidAction)
	}

	signer, err := getAccount(vm.state, req.Signer)
	if err != nil {
		return ids.Empty, err
	}
	deposit := contract.Zero()
	if req.Deposit != nil {
		deposit.Set(req.Deposit)
	}
	if err := signer.Debit(deposit); err != nil {
		return ids.Empty, fmt.Errorf("%w: %s has %s, needs %s",
			ErrInsufficientFunds, signer.ID, signer.Balance.Dec(), deposit.Dec())
	}
	signer.Nonce++

	tx, err := newTransaction(req, signer.Nonce)
	if err != nil {
		return ids.Empty, err
	}
	if err := vm.state.PutAccount(signer); err != nil {
		return ids.Empty, err
	}
	if err := vm.state.PutTransaction(tx); err != nil {
		return ids.Empty, err
	}
	if err := vm.state.Commit(); err != nil {
		return ids.Empty, err
	}

	root := tx.RootReceipt()
	vm.queue.push(root)
	vm.log.Debug("accepted transaction",
		"tx", tx.ID(),
		"signer", tx.Signer,
		"receiver", tx.Receiver,
		"method", tx.Method,
	)
	return tx.ID(), nil
}

// StepResult summarizes one step.
type StepResult struct {
	Height   uint64
	Executed []ids.ID
	// Pending is the number of receipts left for later steps.
	Pending int
}

// Step executes every ready receipt. When none is ready it does nothing and
// reports the current height.
func (vm *VM) Step(ctx context.Context) (*StepResult, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Receipts move in a staged queue that replaces vm.queue only once the
	// step is committed.
	staged := vm.queue.fork()
	batch := staged.drain()
	if len(batch) == 0 {
		return &StepResult{Height: vm.height, Pending: staged.postponedLen()}, nil
	}

	height := vm.height + 1
	timestamp := vm.clock.Time().Unix()
	exec := &executor{engine: vm.engine, config: vm.config, log: vm.log}
	layer := vm.state.Nested()
	result := &StepResult{Height: height}
	outcomes := make([]*Outcome, 0, len(batch))

	for i, r := range batch {
		results, err := vm.promiseResults(layer, r)
		if err != nil {
			layer.Abort()
			return nil, err
		}
		execution, err := exec.execute(layer, r, results)
		if err != nil {
			layer.Abort()
			return nil, err
		}

		o := execution.outcome
		o.Height = height
		o.Index = uint32(i)
		o.Timestamp = timestamp
		if err := layer.PutOutcome(o); err != nil {
			layer.Abort()
			return nil, err
		}
		outcomes = append(outcomes, o)
		result.Executed = append(result.Executed, r.ID)

		for _, produced := range execution.produced {
			staged.push(produced)
		}
		if err := staged.release(func(id ids.ID) (bool, error) {
			_, ok, err := settle(layer, id)
			return ok, err
		}); err != nil {
			layer.Abort()
			return nil, err
		}
	}

	if err := layer.SetHeight(height); err != nil {
		layer.Abort()
		return nil, err
	}
	if err := layer.Commit(); err != nil {
		return nil, fmt.Errorf("couldn't commit step %d: %w", height, err)
	}
	vm.height = height
	vm.queue.adopt(staged)
	if err := vm.state.Commit(); err != nil {
		return nil, fmt.Errorf("couldn't flush step %d: %w", height, err)
	}
	result.Pending = vm.queue.readyLen() + vm.queue.postponedLen()

	vm.log.Debug("executed step",
		"height", height,
		"receipts", len(batch),
		"pending", result.Pending,
	)
	vm.record(ctx, outcomes)
	return result, nil
}

// Settle runs steps until no receipt is left, at most [maxSteps] of them.
func (vm *VM) Settle(ctx context.Context, maxSteps int) (int, error) {
	for steps := 0; steps < maxSteps; steps++ {
		if vm.Idle() {
			return steps, nil
		}
		res, err := vm.Step(ctx)
		if err != nil {
			return steps, err
		}
		if len(res.Executed) == 0 {
			// Receipts are postponed on dependencies that will never
			// settle.
			return steps, nil
		}
	}
	return maxSteps, nil
}

// Idle reports whether no receipt is waiting.
func (vm *VM) Idle() bool {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.queue.readyLen() == 0 && vm.queue.postponedLen() == 0
}

// Run executes a step every StepInterval, and as soon as a receipt is
// queued, until [ctx] is done.
func (vm *VM) Run(ctx context.Context) error {
	ticker := time.NewTicker(vm.config.StepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-vm.queue.notify:
		}
		if _, err := vm.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			vm.log.Error("step failed", "err", err)
			return err
		}
	}
}

// View calls [method] of [id] without persisting anything. Writes and
// promises are rejected.
func (vm *VM) View(id contract.AccountID, method string, args []byte) ([]byte, []string, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, nil, ErrNotInitialized
	}
	layer := vm.state.Nested()
	defer layer.Abort()

	exec := &executor{engine: vm.engine, config: vm.config, log: vm.log}
	inv, err := exec.view(layer, id, method, args)
	if err != nil {
		return nil, nil, err
	}
	return inv.value, inv.logs, nil
}

// GetAccount returns a copy of [id]'s account.
func (vm *VM) GetAccount(id contract.AccountID) (*Account, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, ErrNotInitialized
	}
	return getAccount(vm.state, id)
}

// GetCode returns the code deployed to [id].
func (vm *VM) GetCode(id contract.AccountID) ([]byte, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, ErrNotInitialized
	}
	acc, err := getAccount(vm.state, id)
	if err != nil {
		return nil, err
	}
	if !acc.HasCode() {
		return nil, fmt.Errorf("%w: %s", ErrNoCode, id)
	}
	return vm.state.GetCode(acc.CodeHash)
}

// Outcome returns the final outcome of [txID], following the promises its
// receipts returned. ErrPending is returned until it has settled.
func (vm *VM) Outcome(txID ids.ID) (*Outcome, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, ErrNotInitialized
	}
	if _, err := vm.getTransaction(txID); err != nil {
		return nil, err
	}
	o, ok, err := settle(vm.state, ReceiptID(txID, 0))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPending, txID)
	}
	return o, nil
}

// Receipts returns the outcomes of [txID]'s receipts in execution order.
func (vm *VM) Receipts(txID ids.ID) (*Transaction, []*Outcome, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil, nil, ErrNotInitialized
	}
	tx, err := vm.getTransaction(txID)
	if err != nil {
		return nil, nil, err
	}
	outcomes, err := vm.state.GetTransactionOutcomes(txID)
	return tx, outcomes, err
}

// AccountHistory returns the journaled outcomes [id] sent or received, most
// recent first.
func (vm *VM) AccountHistory(ctx context.Context, id contract.AccountID, limit, offset int) ([]receipts.Entry, error) {
	if vm.journal == nil {
		return nil, ErrNoJournal
	}
	return vm.journal.ListByAccount(ctx, string(id), limit, offset)
}

// Height returns the height of the last executed step.
func (vm *VM) Height() uint64 {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.height
}

// Shutdown flushes and closes the VM's state.
func (vm *VM) Shutdown() error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == nil {
		return nil
	}
	if err := vm.state.Commit(); err != nil {
		return err
	}
	return vm.state.Close()
}

func (vm *VM) getTransaction(txID ids.ID) (*Transaction, error) {
	tx, err := vm.state.GetTransaction(txID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, txID)
	}
	return tx, err
}

// promiseResults collects what [r]'s dependencies settled to, in the order
// they were declared.
func (vm *VM) promiseResults(s State, r *Receipt) ([]contract.PromiseResult, error) {
	results := make([]contract.PromiseResult, 0, len(r.DependsOn))
	for _, dep := range r.DependsOn {
		o, ok, err := settle(s, dep)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("receipt %s ran before its dependency %s settled", r.ID, dep)
		}
		results = append(results, o.PromiseResult())
	}
	return results, nil
}

// settle follows the promises returned from [receiptID] down to the outcome
// that carries the result. It reports false while any of them is pending.
func settle(s OutcomeState, receiptID ids.ID) (*Outcome, bool, error) {
	for {
		o, err := s.GetOutcome(receiptID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if o.Final() {
			return o, true, nil
		}
		receiptID = o.ReturnedReceipt
	}
}

func (vm *VM) record(ctx context.Context, outcomes []*Outcome) {
	if vm.journal == nil {
		return
	}
	entries := make([]receipts.Entry, 0, len(outcomes))
	for _, o := range outcomes {
		entries = append(entries, journalEntry(o))
	}
	if err := vm.journal.Record(ctx, entries); err != nil {
		// The ledger already holds every outcome.
		vm.log.Warn("couldn't journal step", "err", err)
	}
}

func journalEntry(o *Outcome) receipts.Entry {
	return receipts.Entry{
		ReceiptID:   o.ReceiptID.String(),
		TxID:        o.TxID.String(),
		Height:      o.Height,
		Index:       o.Index,
		Predecessor: string(o.Predecessor),
		Receiver:    string(o.Receiver),
		Refund:      o.Refund,
		Status:      o.Status.String(),
		Value:       o.Value,
		Failure:     o.Failure,
		Logs:        o.Logs,
		GasBurnt:    o.GasBurnt,
		Timestamp:   o.Timestamp,
	}
}
