package spool

import "sync"

// claimSet tracks which files are currently checked out by a consumer.
// Membership reads are lock-free so the eviction scan can consult the set
// without taking the store mutex; mutation happens only under that mutex.
type claimSet struct {
	members sync.Map
}

func (c *claimSet) add(paths ...string) {
	for _, path := range paths {
		c.members.Store(path, struct{}{})
	}
}

func (c *claimSet) remove(paths ...string) {
	for _, path := range paths {
		c.members.Delete(path)
	}
}

func (c *claimSet) contains(path string) bool {
	_, ok := c.members.Load(path)
	return ok
}
