package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey keys a raw upstream response within a namespace such as "nasa:".
	HTTPKey(namespace, key string) string

	// DatasetKey keys the normalized dataset for a feed date range.
	DatasetKey(startDate, endDate string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// datasetVersion changes whenever the cached snapshot layout does, so stale
// entries are simply never read again.
const datasetVersion = "v1"

// DatasetKey returns "dataset:<version>:<start>:<end>".
func (DefaultKeyer) DatasetKey(startDate, endDate string) string {
	return fmt.Sprintf("dataset:%s:%s:%s", datasetVersion, startDate, endDate)
}

// ScopedKeyer prefixes every key from inner, letting deployments such as
// staging and production share one Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k ScopedKeyer) DatasetKey(startDate, endDate string) string {
	return k.prefix + k.inner.DatasetKey(startDate, endDate)
}
