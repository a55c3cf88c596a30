package listing

import (
	"context"
	"sync"
	"time"

	"vanguard/core"
	"vanguard/internal/listing"
	"vanguard/pkg/debounce"

	"github.com/fox-one/pkg/logger"
)

// Options view session options
type Options struct {
	PerPage  int
	Debounce time.Duration
	// Limit page size of the list request, 0 for the api default
	Limit int
	// Session operator of the view, nil skips permission checks
	Session *core.Session
}

// Snapshot what the view currently shows
type Snapshot struct {
	Items      []*core.UnifiedItem
	Page       int
	TotalPages int
	Total      int
	Categories []string
	Term       string
	Category   string
	Kind       core.Kind
	Active     listing.ActiveFilter
	Loading    bool
	// Err last fetch or mutation failure, nil once a later fetch succeeds
	Err error
	// Seq increases with every notification, listeners see it in order
	Seq uint64
}

// View one listing view session. It owns the unified collection, the
// filters and the page, and reconciles optimistic mutations with the api.
type View struct {
	store     core.ListingStore
	opts      Options
	debouncer *debounce.Debouncer

	mux sync.Mutex
	// items replaced as a whole, never modified in place
	items []*core.UnifiedItem
	// loads successful loads, a failed mutation only rolls back while it is unchanged
	loads   uint64
	mounted bool
	query   listing.Query
	page    int
	loading bool
	err     error

	gen    uint64
	cancel context.CancelFunc

	// notifyMux orders deliveries, seq numbers them
	notifyMux sync.Mutex
	seq       uint64
	listeners []func(Snapshot)
}

// NewView new view session, PerPage must be positive
func NewView(store core.ListingStore, opts Options) *View {
	if opts.PerPage <= 0 {
		panic("listing: view needs a positive PerPage")
	}

	v := &View{
		store: store,
		opts:  opts,
		page:  1,
		query: listing.Query{Active: listing.ActiveAll},
	}

	v.debouncer = debounce.New(opts.Debounce, v.setTerm)
	return v
}

// OnChange fn is called with a fresh snapshot after every state change.
// Deliveries are serialized in Seq order, fn must not change the view.
func (v *View) OnChange(fn func(Snapshot)) {
	v.mux.Lock()
	defer v.mux.Unlock()

	v.listeners = append(v.listeners, fn)
}

// Load fetch both collections. A newer Load cancels this one, in which
// case ErrStaleFetch is returned and the result is dropped. The first Load
// may be served from a store cache, every later one is a refresh and
// reads through it.
func (v *View) Load(ctx context.Context) error {
	v.mux.Lock()
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}

	if v.mounted {
		ctx = core.WithFresh(ctx)
	}
	v.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.loading = true
	v.mux.Unlock()
	v.notify()

	defer cancel()

	assets, coins, err := v.store.ListInvestments(ctx, v.opts.Limit, 0)

	v.mux.Lock()
	if gen != v.gen {
		v.mux.Unlock()
		return &core.Error{Code: core.ErrStaleFetch, Op: "load", Msg: "superseded by a newer load", Err: err}
	}

	v.cancel = nil
	v.loading = false
	if err != nil {
		// keep the last known good items
		v.err = err
	} else {
		v.items = listing.Normalize(assets, coins)
		v.loads++
		v.err = nil
	}
	v.mux.Unlock()

	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("load listings")
	}

	v.notify()
	return err
}

// Search push raw input, the settled term applies after the debounce window
func (v *View) Search(raw string) {
	v.debouncer.Push(raw)
}

// SearchNow apply term immediately, dropping any pending input
func (v *View) SearchNow(term string) {
	v.debouncer.Cancel()
	v.setTerm(term)
}

func (v *View) setTerm(term string) {
	v.update(func() {
		v.query.Term = term
		v.page = 1
	})
}

// SetCategory filter by category, "All" or empty clears it
func (v *View) SetCategory(category string) {
	v.update(func() {
		v.query.Category = category
		v.page = 1
	})
}

// SetKind restrict to one listing kind, empty for both
func (v *View) SetKind(kind core.Kind) {
	v.update(func() {
		v.query.Kind = kind
		v.page = 1
	})
}

// SetActive filter on the active flag
func (v *View) SetActive(active listing.ActiveFilter) {
	v.update(func() {
		v.query.Active = active
		v.page = 1
	})
}

// SetPage move to page, clamped into the available pages
func (v *View) SetPage(page int) {
	v.update(func() {
		filtered := listing.Filter(v.items, v.query)
		v.page = listing.ClampPage(page, listing.TotalPages(len(filtered), v.opts.PerPage))
	})
}

// Items every loaded item, unfiltered
func (v *View) Items() []*core.UnifiedItem {
	v.mux.Lock()
	defer v.mux.Unlock()

	return v.items
}

// Snapshot current page and filters
func (v *View) Snapshot() Snapshot {
	v.mux.Lock()
	defer v.mux.Unlock()

	return v.snapshot()
}

func (v *View) snapshot() Snapshot {
	filtered := listing.Filter(v.items, v.query)
	page := listing.Paginate(filtered, v.page, v.opts.PerPage)

	return Snapshot{
		Items:      page.Items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Categories: listing.Categories(v.items),
		Term:       v.query.Term,
		Category:   v.query.Category,
		Kind:       v.query.Kind,
		Active:     v.query.Active,
		Loading:    v.loading,
		Err:        v.err,
		Seq:        v.seq,
	}
}

// ToggleActive flip is_active of id optimistically
func (v *View) ToggleActive(ctx context.Context, id string) error {
	return v.mutate(ctx, id, func(item *core.UnifiedItem) (core.Patch, func(context.Context) error) {
		active := !item.IsActive
		return core.Patch{IsActive: &active}, func(ctx context.Context) error {
			return v.store.SetActive(ctx, item.Kind, item.SourceID, active)
		}
	})
}

// Remove delete id optimistically
func (v *View) Remove(ctx context.Context, id string) error {
	return v.mutate(ctx, id, func(item *core.UnifiedItem) (core.Patch, func(context.Context) error) {
		return core.Patch{Remove: true}, func(ctx context.Context) error {
			return v.store.Delete(ctx, item.Kind, item.SourceID)
		}
	})
}

// Save replace the item with the same id by edited, optimistically
func (v *View) Save(ctx context.Context, edited *core.UnifiedItem) error {
	return v.mutate(ctx, edited.ID, func(_ *core.UnifiedItem) (core.Patch, func(context.Context) error) {
		return core.Patch{Replace: edited}, func(ctx context.Context) error {
			return v.store.Save(ctx, edited)
		}
	})
}

type mutation func(item *core.UnifiedItem) (core.Patch, func(context.Context) error)

func (v *View) mutate(ctx context.Context, id string, fn mutation) error {
	log := logger.FromContext(ctx).WithField("listing", id)

	v.mux.Lock()
	item, ok := listing.Find(v.items, id)
	if !ok {
		v.mux.Unlock()
		return &core.Error{Code: core.ErrListingNotFound, Op: "mutate", Msg: id}
	}

	if v.opts.Session != nil && !v.opts.Session.CanManage(item) {
		v.mux.Unlock()
		return &core.Error{Code: core.ErrForbidden, Op: "mutate", Msg: id}
	}

	patch, commit := fn(item)
	m, err := listing.ApplyPatch(v.items, id, patch)
	if err != nil {
		v.mux.Unlock()
		return err
	}

	v.items = m.Applied
	loads := v.loads
	v.mux.Unlock()
	v.notify()

	if err := commit(ctx); err != nil {
		log.WithError(err).Errorln("mutation failed, rolling back")

		v.mux.Lock()
		// a load that landed meanwhile wins, other mutations are kept
		if v.loads == loads {
			v.items = listing.Restore(v.items, m.Previous, id)
		}
		v.err = err
		v.mux.Unlock()
		v.notify()

		return err
	}

	log.Debugln("mutation committed")
	return nil
}

func (v *View) update(fn func()) {
	v.mux.Lock()
	fn()
	v.mux.Unlock()

	v.notify()
}

func (v *View) notify() {
	v.notifyMux.Lock()
	defer v.notifyMux.Unlock()

	v.mux.Lock()
	listeners := v.listeners
	if len(listeners) == 0 {
		v.mux.Unlock()
		return
	}

	v.seq++
	snap := v.snapshot()
	v.mux.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Close stop the debouncer and cancel the in-flight fetch
func (v *View) Close() {
	v.debouncer.Stop()

	v.mux.Lock()
	defer v.mux.Unlock()

	v.gen++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
