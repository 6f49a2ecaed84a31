package settings

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Failure is a setting whose write did not succeed.
type Failure struct {
	ID  string
	Err error
}

// Result aggregates the outcome of one submission.
type Result struct {
	Namespace Namespace
	Applied   []string
	Failures  []Failure
	reload    bool
}

// OK reports whether every write succeeded.
func (r Result) OK() bool {
	return len(r.Failures) == 0
}

// FailedIDs returns the ids of the failed settings.
func (r Result) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.ID)
	}

	return ids
}

// RequiresReload reports whether an applied setting asks the host to reload.
func (r Result) RequiresReload() bool {
	return r.reload
}

// Notifier receives the aggregate outcome of a submission.
type Notifier interface {
	Notify(ctx context.Context, result Result)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, result Result)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, result Result) {
	f(ctx, result)
}

// SubmitOptions tunes a submission.
type SubmitOptions struct {
	// Concurrency limits parallel writes. Zero means unlimited.
	Concurrency int
	// ClientOnly rejects world scoped settings with ErrRestricted without
	// writing them. Set for users who may only change their own values.
	ClientOnly bool
}

// Submit writes every submitted value of a namespace as an independent write.
// All writes are attempted and run to completion even when the caller's
// context is canceled; a failing write never stops its siblings. The notifier
// is called exactly once after every write settled. The returned error is only
// set for an undeclared namespace, in which case nothing is written.
func Submit(
	ctx context.Context,
	store Store,
	schema *Schema,
	ns Namespace,
	values map[string]any,
	notifier Notifier,
	opts SubmitOptions,
) (Result, error) {
	defs, err := schema.Definitions(ns)
	if err != nil {
		return Result{}, err
	}

	ids := submissionOrder(defs, values)
	outcomes := make([]error, len(ids))
	writeCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = write(writeCtx, store, schema, ns, id, values[id], opts.ClientOnly)
			return nil
		})
	}

	_ = g.Wait()

	result := Result{Namespace: ns}

	for i, id := range ids {
		if outcomes[i] != nil {
			result.Failures = append(result.Failures, Failure{ID: id, Err: outcomes[i]})
			continue
		}

		result.Applied = append(result.Applied, id)

		if d, ok := schema.Lookup(ns, id); ok && d.RequiresReload {
			result.reload = true
		}
	}

	if notifier != nil {
		notifier.Notify(ctx, result)
	}

	return result, nil
}

func write(ctx context.Context, store Store, schema *Schema, ns Namespace, id string, value any, clientOnly bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("write %s panicked: %v", id, r)
		}
	}()

	d, ok := schema.Lookup(ns, id)
	if !ok {
		return errors.Wrapf(ErrUnknownSetting, "%q in namespace %q", id, ns)
	}

	if clientOnly && d.EffectiveScope() != ScopeClient {
		return errors.Wrapf(ErrRestricted, "%q", id)
	}

	return store.Set(ctx, schema.Key(id), value)
}

// submissionOrder sorts submitted ids by declared order, unknown ids last.
func submissionOrder(defs []Definition, values map[string]any) []string {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		index[d.ID] = i
	}

	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(a, b int) bool {
		ia, okA := index[ids[a]]
		ib, okB := index[ids[b]]

		switch {
		case okA && okB:
			return ia < ib
		case okA != okB:
			return okA
		default:
			return ids[a] < ids[b]
		}
	})

	return ids
}

// ExpandSubmission maps host form names of the shape <module>.<id> to setting
// ids. Entries of other modules are dropped.
func ExpandSubmission(module string, flat map[string]string) map[string]any {
	prefix := module + "."
	out := make(map[string]any, len(flat))

	for name, value := range flat {
		id, ok := strings.CutPrefix(name, prefix)
		if !ok || id == "" {
			continue
		}

		out[id] = value
	}

	return out
}
