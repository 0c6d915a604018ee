package driverkind

import (
	"sort"
	"sync"
)

var (
	kindRegistry   = make(map[string]Kind)
	kindRegistryMu sync.RWMutex
)

// Register makes a driver kind available under its Name().
// It is called from init() in the files defining each kind; a later
// registration under the same name replaces the earlier one.
func Register(k Kind) {
	kindRegistryMu.Lock()
	defer kindRegistryMu.Unlock()
	kindRegistry[k.Name()] = k
}

// Lookup returns the kind registered for a driver type. Types without a
// dedicated kind get the passive kind, which only accepts drivers that have
// no peripheral attached. Type names are case-sensitive, like the C enum
// they end up in.
func Lookup(driverType string) Kind {
	kindRegistryMu.RLock()
	defer kindRegistryMu.RUnlock()
	if k, ok := kindRegistry[driverType]; ok {
		return k
	}
	return passive{name: driverType}
}

// Registered reports whether driverType has a dedicated kind.
func Registered(driverType string) bool {
	kindRegistryMu.RLock()
	defer kindRegistryMu.RUnlock()
	_, ok := kindRegistry[driverType]
	return ok
}

// List returns the names of all registered kinds, sorted.
func List() []string {
	kindRegistryMu.RLock()
	defer kindRegistryMu.RUnlock()
	names := make([]string, 0, len(kindRegistry))
	for name := range kindRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
