// Package allowlist implements update-field validation for partial updates:
// each entity registers the set of fields a PATCH payload may touch, and a
// payload containing any field outside that set is rejected as a whole. The
// registry is data-driven so new entity types only need a Register call.
package allowlist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
)

// ErrUnknownEntity is returned when validating against an entity that was
// never registered.
var ErrUnknownEntity = errors.New("unknown entity")

// RejectedFieldsError reports the complete set of offending fields of a
// rejected update. It matches common.ErrValidation via errors.Is.
type RejectedFieldsError struct {
	Entity string
	Fields []string
}

func (e *RejectedFieldsError) Error() string {
	return fmt.Sprintf("invalid update fields for %s: %s", e.Entity, strings.Join(e.Fields, ", "))
}

func (e *RejectedFieldsError) Unwrap() error {
	return common.ErrValidation
}

type Registry struct {
	entities map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]map[string]struct{})}
}

// Register declares the allowed update fields for an entity. Registering the
// same entity again replaces its allowlist.
func (r *Registry) Register(entity string, fields ...string) {
	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}
	r.entities[entity] = allowed
}

// Validate checks every field of an update payload against the entity's
// allowlist. On any violation the whole update is rejected: the returned
// *RejectedFieldsError lists all offending fields, sorted, and no caller may
// apply even the valid subset.
func (r *Registry) Validate(entity string, fields []string) error {
	allowed, ok := r.entities[entity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}

	var rejected []string
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			rejected = append(rejected, f)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return &RejectedFieldsError{Entity: entity, Fields: rejected}
	}
	return nil
}
