// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployer executes deployment plans against a chain client.
//
// Steps run one at a time in dependency order. Every outcome is recorded in
// an ExecutionRecord and handed to a Journal so an interrupted run can be
// resumed: steps already deployed are never deployed again, and post-deploy
// calls already applied are never sent again. Failures are never retried;
// the first failing step halts the run.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/deployer/pkg/chain"
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
	luxlog "github.com/luxfi/log"
	"go.uber.org/zap"
)

// Journal persists the record mapping. It is called after every state
// transition with the complete mapping.
type Journal func(records.Records) error

// Executor runs plans. The zero value is not usable, create one with New.
type Executor struct {
	log      luxlog.Logger
	journal  Journal
	observer Observer
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithJournal persists records after every state transition.
func WithJournal(j Journal) Option {
	return func(e *Executor) {
		e.journal = j
	}
}

// WithObserver reports step lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		e.observer = o
	}
}

// WithClock overrides the clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

func New(log luxlog.Logger, opts ...Option) *Executor {
	e := &Executor{
		log:      log,
		journal:  func(records.Records) error { return nil },
		observer: nopObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs p from scratch against client with no logging or journal.
func Execute(ctx context.Context, p *plan.Plan, client chain.Client, accounts []string) (records.Records, error) {
	return New(luxlog.NewNoOpLogger()).Execute(ctx, p, client, accounts, nil)
}

// Execute runs p against client, resuming from prior when it is non-nil.
//
// The returned mapping holds a record for every step of p, plus any prior
// records of steps p no longer declares. It is returned on success and on
// failure alike; steps the run did not reach stay pending. Plan validation,
// cycle detection and account range checks all happen before the first
// chain call.
//
// The account range check covers senders as well as account references:
// every step and call is signed by an account, index 0 unless from is set,
// so even a plan of literals needs at least one account.
func (e *Executor) Execute(
	ctx context.Context,
	p *plan.Plan,
	client chain.Client,
	accounts []string,
	prior records.Records,
) (records.Records, error) {
	rs := e.initRecords(p, prior)

	order, err := p.Order()
	if err != nil {
		return rs, err
	}
	if err := CheckAccounts(order, len(accounts)); err != nil {
		return rs, err
	}
	if err := e.journal(rs); err != nil {
		return rs, fmt.Errorf("failed to persist execution log: %w", err)
	}

	r := &run{
		Executor: e,
		plan:     p,
		client:   client,
		accounts: accounts,
		records:  rs,
	}
	e.log.Info("executing plan",
		zap.String("plan", p.Name),
		zap.Int("steps", len(order)),
		zap.Int("accounts", len(accounts)),
	)
	for _, step := range order {
		if err := ctx.Err(); err != nil {
			e.log.Warn("plan execution interrupted", zap.String("next-step", step.ID), zap.Error(err))
			return rs, err
		}
		if err := r.step(ctx, step); err != nil {
			return rs, err
		}
	}
	e.log.Info("plan executed", zap.String("plan", p.Name))
	return rs, nil
}

// initRecords copies prior and adds a pending record for every step that
// has none.
func (e *Executor) initRecords(p *plan.Plan, prior records.Records) records.Records {
	rs := prior.Clone()
	for _, s := range p.Steps {
		if r, ok := rs[s.ID]; ok {
			r.StepID = s.ID
			continue
		}
		rs[s.ID] = &records.ExecutionRecord{
			StepID:    s.ID,
			Contract:  s.Contract,
			Status:    records.StatusPending,
			UpdatedAt: e.now(),
		}
	}
	return rs
}

// CheckAccounts verifies every sender and account reference in order falls
// within n accounts.
func CheckAccounts(order []*plan.Step, n int) error {
	check := func(step string, idx int) error {
		if idx < 0 || idx >= n {
			return &AccountIndexOutOfRangeError{Step: step, Index: idx, Accounts: n}
		}
		return nil
	}
	for _, s := range order {
		if err := check(s.ID, s.Sender()); err != nil {
			return err
		}
		for _, a := range s.Args {
			for _, idx := range a.AccountRefs() {
				if err := check(s.ID, idx); err != nil {
					return err
				}
			}
		}
		for i := range s.Calls {
			c := &s.Calls[i]
			if err := check(s.ID, c.Sender(s)); err != nil {
				return err
			}
			for _, a := range c.Args {
				for _, idx := range a.AccountRefs() {
					if err := check(s.ID, idx); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// run is the state of one Execute call.
type run struct {
	*Executor
	plan     *plan.Plan
	client   chain.Client
	accounts []string
	records  records.Records
}

func (r *run) step(ctx context.Context, step *plan.Step) error {
	rec := r.records[step.ID]

	if err := r.reconcile(ctx, step, rec); err != nil {
		return err
	}

	if rec.Deployed() && allApplied(step, rec) {
		r.log.Debug("step already deployed", zap.String("step", step.ID), zap.String("address", rec.Address))
		if rec.Status != records.StatusComplete {
			rec.Status = records.StatusComplete
			rec.UpdatedAt = r.now()
			if err := r.persist(); err != nil {
				return err
			}
		}
		r.observer.StepSkipped(step, rec)
		return nil
	}

	r.observer.StepStarted(step)
	if rec.Address == "" {
		if err := r.deploy(ctx, step, rec); err != nil {
			return err
		}
	} else {
		r.log.Info("reusing deployed contract",
			zap.String("step", step.ID),
			zap.String("address", rec.Address),
		)
	}

	for i := range step.Calls {
		if rec.CallApplied(i) {
			continue
		}
		if err := ctx.Err(); err != nil {
			r.log.Warn("plan execution interrupted", zap.String("step", step.ID), zap.Int("next-call", i), zap.Error(err))
			return err
		}
		if err := r.call(ctx, step, i, rec); err != nil {
			return err
		}
	}

	rec.Status = records.StatusComplete
	rec.Error = ""
	rec.UpdatedAt = r.now()
	if err := r.persist(); err != nil {
		return err
	}
	r.observer.StepCompleted(step, rec)
	return nil
}

// reconcile settles a record left behind by an earlier run. A deployment
// that reached the network without a known outcome is looked up so a mined
// contract is adopted instead of deployed twice.
func (r *run) reconcile(ctx context.Context, step *plan.Step, rec *records.ExecutionRecord) error {
	if rec.Status == records.StatusFailed {
		if rec.Address != "" {
			rec.Status = records.StatusDeployed
			return nil
		}
		if rec.TxID == "" {
			rec.Status = records.StatusPending
			return nil
		}
	}
	if rec.Address != "" || rec.TxID == "" {
		return nil
	}

	lookup, ok := r.client.(chain.ReceiptLookup)
	if !ok {
		r.log.Warn("cannot check earlier deployment transaction, deploying again",
			zap.String("step", step.ID),
			zap.String("tx", rec.TxID),
		)
		rec.Status = records.StatusPending
		rec.TxID = ""
		return nil
	}
	address, found, err := lookup.LookupDeployment(ctx, rec.TxID)
	if err != nil {
		return &StepError{Step: step.ID, Call: -1, Err: err}
	}
	if !found {
		r.log.Info("earlier deployment transaction was not mined",
			zap.String("step", step.ID),
			zap.String("tx", rec.TxID),
		)
		rec.Status = records.StatusPending
		rec.TxID = ""
		return nil
	}
	r.log.Info("adopting contract from earlier deployment transaction",
		zap.String("step", step.ID),
		zap.String("tx", rec.TxID),
		zap.String("address", address),
	)
	rec.Address = address
	rec.Status = records.StatusDeployed
	rec.Error = ""
	rec.UpdatedAt = r.now()
	return r.persist()
}

// settleCall decides whether the call recorded as pending in rec was
// applied by its earlier transaction.
func (r *run) settleCall(ctx context.Context, step *plan.Step, rec *records.ExecutionRecord) (bool, error) {
	pending := rec.PendingCall
	lookup, ok := r.client.(chain.ReceiptLookup)
	if !ok {
		r.log.Warn("cannot check earlier call transaction, sending again",
			zap.String("step", step.ID),
			zap.String("method", pending.Method),
			zap.String("tx", pending.TxID),
		)
		return false, nil
	}
	applied, err := lookup.LookupCall(ctx, pending.TxID)
	if err != nil {
		return false, err
	}
	if applied {
		r.log.Info("adopting call from earlier transaction",
			zap.String("step", step.ID),
			zap.String("method", pending.Method),
			zap.String("tx", pending.TxID),
		)
	} else {
		r.log.Info("earlier call transaction was not applied",
			zap.String("step", step.ID),
			zap.String("method", pending.Method),
			zap.String("tx", pending.TxID),
		)
	}
	return applied, nil
}

// submitted journals a transaction id as soon as it is known, so a run
// killed while waiting for the receipt can still be reconciled.
func (r *run) submitted(set func(txID string)) chain.SubmittedFunc {
	return func(txID string) {
		set(txID)
		if err := r.persist(); err != nil {
			r.log.Warn("failed to record submitted transaction", zap.String("tx", txID), zap.Error(err))
		}
	}
}

func (r *run) deploy(ctx context.Context, step *plan.Step, rec *records.ExecutionRecord) error {
	args, err := r.resolveArgs(step.ID, step.Args)
	if err != nil {
		return err
	}
	rendered := make([]string, 0, len(args))
	for _, a := range args {
		rendered = append(rendered, plan.FormatValue(a))
	}

	req := chain.DeployRequest{
		Contract: step.Contract,
		Args:     args,
		Value:    step.Value.WeiOrNil(),
		From:     r.accounts[step.Sender()],
		Submitted: r.submitted(func(txID string) {
			rec.TxID = txID
			rec.UpdatedAt = r.now()
		}),
	}
	r.log.Debug("deploying contract",
		zap.String("step", step.ID),
		zap.String("contract", step.Contract),
		zap.Strings("args", rendered),
		zap.String("from", req.From),
	)

	res, err := r.client.Deploy(ctx, req)
	rec.Contract = step.Contract
	rec.ConstructorArgs = rendered
	rec.UpdatedAt = r.now()
	if err != nil {
		rec.Status = records.StatusFailed
		if txID := submittedTx(err); txID != "" {
			rec.TxID = txID
		}
		rec.Error = err.Error()
		return r.fail(step, rec, &StepError{Step: step.ID, Call: -1, Err: err})
	}

	rec.Status = records.StatusDeployed
	rec.Address = res.Address
	rec.TxID = res.TxID
	rec.Error = ""
	r.log.Info("contract deployed",
		zap.String("step", step.ID),
		zap.String("contract", step.Contract),
		zap.String("address", res.Address),
		zap.String("tx", res.TxID),
	)
	return r.persist()
}

func (r *run) call(ctx context.Context, step *plan.Step, index int, rec *records.ExecutionRecord) error {
	c := &step.Calls[index]
	targetID := c.TargetStep(step.ID)
	target := r.records[targetID]
	if !target.Deployed() {
		return &StepError{
			Step:   step.ID,
			Call:   index,
			Method: c.Method,
			Err:    &UnresolvedDependencyError{Step: step.ID, Dependency: targetID, Status: target.Status},
		}
	}
	targetStep, _ := r.plan.Step(targetID)

	if rec.PendingCall != nil && rec.PendingCall.Index == index {
		applied, err := r.settleCall(ctx, step, rec)
		if err != nil {
			return &StepError{Step: step.ID, Call: index, Method: c.Method, Err: err}
		}
		cr := *rec.PendingCall
		rec.PendingCall = nil
		rec.UpdatedAt = r.now()
		if applied {
			rec.Calls = append(rec.Calls, cr)
			if err := r.persist(); err != nil {
				return err
			}
			r.observer.CallApplied(step, c, &cr)
			return nil
		}
	}

	args, err := r.resolveArgs(step.ID, c.Args)
	if err != nil {
		return err
	}
	req := chain.CallRequest{
		Contract: targetStep.Contract,
		Address:  target.Address,
		Method:   c.Method,
		Args:     args,
		Value:    c.Value.WeiOrNil(),
		From:     r.accounts[c.Sender(step)],
		Submitted: r.submitted(func(txID string) {
			rec.PendingCall = &records.CallRecord{Index: index, Method: c.Method, Target: targetID, TxID: txID}
			rec.UpdatedAt = r.now()
		}),
	}
	r.log.Debug("calling contract",
		zap.String("step", step.ID),
		zap.String("target", targetID),
		zap.String("method", c.Method),
		zap.String("address", target.Address),
	)

	res, err := r.client.Call(ctx, req)
	rec.UpdatedAt = r.now()
	if err != nil {
		rec.Status = records.StatusFailed
		rec.Error = fmt.Sprintf("call %d (%s): %v", index, c.Method, err)
		if reverted(err) {
			rec.PendingCall = nil
		} else if txID := submittedTx(err); txID != "" {
			rec.PendingCall = &records.CallRecord{Index: index, Method: c.Method, Target: targetID, TxID: txID}
		}
		return r.fail(step, rec, &StepError{Step: step.ID, Call: index, Method: c.Method, Err: err})
	}

	cr := records.CallRecord{Index: index, Method: c.Method, Target: targetID, TxID: res.TxID}
	rec.Calls = append(rec.Calls, cr)
	rec.PendingCall = nil
	r.log.Info("call applied",
		zap.String("step", step.ID),
		zap.String("target", targetID),
		zap.String("method", c.Method),
		zap.String("tx", res.TxID),
	)
	if err := r.persist(); err != nil {
		return err
	}
	r.observer.CallApplied(step, c, &cr)
	return nil
}

func allApplied(step *plan.Step, rec *records.ExecutionRecord) bool {
	for i := range step.Calls {
		if !rec.CallApplied(i) {
			return false
		}
	}
	return true
}

// resolveArgs turns argument descriptors into concrete values: literals pass
// through, account references become addresses and step references become
// the referenced contract address.
func (r *run) resolveArgs(stepID string, args []plan.Arg) ([]any, error) {
	out := make([]any, 0, len(args))
	for _, a := range args {
		v, err := r.resolve(stepID, a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *run) resolve(stepID string, a plan.Arg) (any, error) {
	switch a.Kind {
	case plan.ArgLiteral:
		return a.Value, nil
	case plan.ArgAccount:
		if a.Account < 0 || a.Account >= len(r.accounts) {
			return nil, &AccountIndexOutOfRangeError{Step: stepID, Index: a.Account, Accounts: len(r.accounts)}
		}
		return r.accounts[a.Account], nil
	case plan.ArgStepOutput:
		dep, ok := r.records[a.Step]
		if !ok {
			return nil, &UnresolvedDependencyError{Step: stepID, Dependency: a.Step, Status: records.StatusPending}
		}
		if !dep.Deployed() {
			return nil, &UnresolvedDependencyError{Step: stepID, Dependency: a.Step, Status: dep.Status}
		}
		return dep.Address, nil
	case plan.ArgList:
		items := make([]any, 0, len(a.Items))
		for _, item := range a.Items {
			v, err := r.resolve(stepID, item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}
	return nil, fmt.Errorf("step %q: unsupported argument kind %s", stepID, a.Kind)
}

func (r *run) fail(step *plan.Step, rec *records.ExecutionRecord, err error) error {
	r.log.Error("step failed", zap.String("step", step.ID), zap.Error(err))
	if perr := r.persist(); perr != nil {
		return errors.Join(err, perr)
	}
	r.observer.StepFailed(step, rec, err)
	return err
}

func (r *run) persist() error {
	if err := r.journal(r.records); err != nil {
		return fmt.Errorf("failed to persist execution log: %w", err)
	}
	return nil
}

// reverted reports whether err says the transaction was mined and failed,
// so it can never apply later.
func reverted(err error) bool {
	var cerr *chain.ChainError
	return errors.As(err, &cerr) && cerr.Kind == chain.KindReverted
}

// submittedTx returns the transaction id carried by a chain error, if the
// transaction reached the network.
func submittedTx(err error) string {
	var cerr *chain.ChainError
	if errors.As(err, &cerr) {
		return cerr.TxID
	}
	var terr *chain.TimeoutError
	if errors.As(err, &terr) {
		return terr.TxID
	}
	return ""
}
