// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Ownership Guard

// Ownable is implemented by any resource that is bound to a single owning
// (or authoring) user. Listings report their owner, reviews their author.
type Ownable interface {
	// OwnedBy returns the user ID allowed to mutate the resource.
	// An empty string means the resource has no owner assigned yet.
	OwnedBy() string
}

// CanMutate decides whether the given identity may update or delete the
// resource.
//
// # Contract
//
// The guard is a pure, total decision function: it never panics and has no
// side effects, so callers can branch on it directly before every mutation.
//
//   - nil identity (anonymous request) always yields false.
//   - A resource with no owner yields false; ownerless records are never
//     client-mutable.
//   - Otherwise the identity must match the resource owner exactly.
func CanMutate(identity *Identity, resource Ownable) bool {
	if identity == nil || resource == nil {
		return false
	}

	owner := resource.OwnedBy()
	if owner == "" {
		return false
	}

	return identity.UserID == owner
}
