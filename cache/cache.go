// Package cache memoizes interface-implementor lookups for a long-lived
// schema. The possible-types set behind a fragment spread is
// schema-invariant, so a service validating many documents against one
// schema shares a single computed table instead of rebuilding it per
// walk.
package cache

import (
	"context"
	"strings"

	"github.com/golang/groupcache"
	"github.com/shyptr/graphql-validator/schema"
)

// Resolver wraps an underlying schema.Resolver, serving GetImplementors
// through a groupcache group keyed by interface name. All other lookups
// pass through unchanged.
type Resolver struct {
	schema.Resolver
	group *groupcache.Group
}

var _ schema.Resolver = (*Resolver)(nil)

// New builds a cached Resolver over base. name must be unique per
// process (groupcache groups are registered globally and NewGroup
// panics on a duplicate); the schema's own name or manifest key is a
// good choice. cacheBytes bounds the group's memory.
func New(name string, base schema.Resolver, cacheBytes int64) *Resolver {
	group := groupcache.NewGroup(name, cacheBytes, groupcache.GetterFunc(
		func(_ context.Context, key string, dest groupcache.Sink) error {
			objs := base.GetImplementors(key)
			names := make([]string, len(objs))
			for i, obj := range objs {
				names[i] = obj.Name
			}
			return dest.SetString(strings.Join(names, "\n"))
		}))
	return &Resolver{Resolver: base, group: group}
}

// GetImplementors serves the implementor set from the group, falling
// back to the underlying resolver if the cache errors.
func (r *Resolver) GetImplementors(interfaceName string) []*schema.Object {
	var joined string
	if err := r.group.Get(context.Background(), interfaceName, groupcache.StringSink(&joined)); err != nil {
		return r.Resolver.GetImplementors(interfaceName)
	}
	if joined == "" {
		return nil
	}
	names := strings.Split(joined, "\n")
	objs := make([]*schema.Object, 0, len(names))
	for _, name := range names {
		t, ok := r.Resolver.GetType(name)
		if !ok {
			continue
		}
		if obj, ok := t.(*schema.Object); ok {
			objs = append(objs, obj)
		}
	}
	return objs
}
