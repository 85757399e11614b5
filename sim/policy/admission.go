// Package policy decides which traffic may insert blocks into the cache.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blocksim/blocksim/sim/trace"
)

// Policy names accepted by NewAdmissionPolicy.
const (
	NameCacheEverything = "cache-everything"
	NameWriteOnly       = "write-only"
	NameReadOnly        = "read-only"

	// NameAll is the historical alias of NameCacheEverything.
	NameAll = "all"
)

// AdmissionPolicy decides whether a request's blocks are inserted after the hit lookup.
// Lookups and hit accounting happen for every request regardless of the policy.
type AdmissionPolicy interface {
	ShouldCache(op trace.OpType) bool
	Name() string
}

// CacheEverything admits reads and writes.
type CacheEverything struct{}

func (CacheEverything) ShouldCache(_ trace.OpType) bool { return true }
func (CacheEverything) Name() string                    { return NameCacheEverything }

// WriteOnly admits writes only.
type WriteOnly struct{}

func (WriteOnly) ShouldCache(op trace.OpType) bool { return op.IsWrite() }
func (WriteOnly) Name() string                     { return NameWriteOnly }

// ReadOnly admits reads only.
type ReadOnly struct{}

func (ReadOnly) ShouldCache(op trace.OpType) bool { return op.IsRead() }
func (ReadOnly) Name() string                     { return NameReadOnly }

var policies = map[string]AdmissionPolicy{
	NameCacheEverything: CacheEverything{},
	NameAll:             CacheEverything{},
	NameWriteOnly:       WriteOnly{},
	NameReadOnly:        ReadOnly{},
}

// IsValidPolicy returns true if name is a recognized admission policy.
func IsValidPolicy(name string) bool {
	_, ok := policies[name]
	return ok
}

// ValidPolicyNames returns the accepted names, aliases included, sorted.
func ValidPolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPolicyNames are the passes run when none are requested.
func DefaultPolicyNames() []string {
	return []string{NameCacheEverything, NameWriteOnly, NameReadOnly}
}

// NewAdmissionPolicy creates an admission policy by name.
// Valid names: "cache-everything" (or "all"), "write-only", "read-only".
func NewAdmissionPolicy(name string) AdmissionPolicy {
	p, ok := policies[name]
	if !ok {
		panic(fmt.Sprintf("unknown admission policy %q; valid policies: [%s]", name, strings.Join(ValidPolicyNames(), ", ")))
	}
	return p
}

// ShouldCache is the admission table as a plain function.
func ShouldCache(op trace.OpType, name string) bool {
	return NewAdmissionPolicy(name).ShouldCache(op)
}
