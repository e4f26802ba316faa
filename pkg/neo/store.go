package neo

import (
	stderrors "errors"
	"sync/atomic"
	"time"

	errs "github.com/matzehuels/neoscope/pkg/errors"
)

// ErrNoData is returned by callers that need an error value for the
// "nothing loaded yet" condition. Store itself reports it as ok == false.
var ErrNoData = errs.New(errs.ErrCodeNoData, "no dataset loaded")

// State is the store's current condition. It is one of [Unloaded],
// [Loaded] or [Failed]; switch on the concrete type.
type State interface {
	isState()
}

// Unloaded means no load has been attempted or completed.
type Unloaded struct{}

// Loaded carries the current dataset.
type Loaded struct {
	Dataset *Dataset
}

// Failed means every load so far has failed. Err is the most recent failure.
type Failed struct {
	Err error
	At  time.Time
}

func (Unloaded) isState() {}
func (Loaded) isState()   {}
func (Failed) isState()   {}

// Store holds the current dataset. Refreshes replace the whole dataset in a
// single atomic swap; readers never observe a partial update.
//
// The zero value is not usable; create one with [NewStore].
type Store struct {
	state   atomic.Pointer[State]
	lastErr atomic.Pointer[Failed]
}

// NewStore creates a Store in the [Unloaded] state.
func NewStore() *Store {
	s := &Store{}
	var st State = Unloaded{}
	s.state.Store(&st)
	return s
}

// State returns the current state.
func (s *Store) State() State {
	return *s.state.Load()
}

// Dataset returns the current dataset. ok is false when nothing has been
// loaded, which is the defined "no data" result for every query.
func (s *Store) Dataset() (ds *Dataset, ok bool) {
	if l, ok := s.State().(Loaded); ok {
		return l.Dataset, true
	}
	return nil, false
}

// Require returns the current dataset or [ErrNoData].
func (s *Store) Require() (*Dataset, error) {
	if ds, ok := s.Dataset(); ok {
		return ds, nil
	}
	return nil, ErrNoData
}

// Swap installs ds as the current dataset and returns the one it replaced,
// if any.
func (s *Store) Swap(ds *Dataset) (previous *Dataset) {
	var st State = Loaded{Dataset: ds}
	old := s.state.Swap(&st)
	if l, ok := (*old).(Loaded); ok {
		return l.Dataset
	}
	return nil
}

// Fail records a failed load. A store that already holds a dataset keeps
// it; otherwise the state becomes [Failed].
func (s *Store) Fail(err error) {
	f := Failed{Err: err, At: time.Now().UTC()}
	s.lastErr.Store(&f)

	var next State = f
	for {
		cur := s.state.Load()
		if _, ok := (*cur).(Loaded); ok {
			return
		}
		if s.state.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// LastError returns the most recent load failure, even if a dataset is
// currently loaded. ok is false if no load has failed.
func (s *Store) LastError() (Failed, bool) {
	if f := s.lastErr.Load(); f != nil {
		return *f, true
	}
	return Failed{}, false
}

// IsNoData reports whether err is the "no dataset loaded" condition.
func IsNoData(err error) bool {
	return stderrors.Is(err, ErrNoData) || errs.Is(err, errs.ErrCodeNoData)
}
