// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package interest

import "context"

// Repository defines the data access contract for the interest catalog.
type Repository interface {
	List(context context.Context) ([]*Interest, error)
	GetByID(context context.Context, id int) (*Interest, error)
	Create(context context.Context, interest *Interest) error
	Update(context context.Context, interest *Interest) error
	Delete(context context.Context, id int) error

	// ExistAll reports whether every given interest ID exists.
	ExistAll(context context.Context, ids []int) (bool, error)

	// AttachToUser links interests to a user, ignoring already-linked pairs.
	AttachToUser(context context.Context, userID string, ids []int) error

	// ListByUser returns the interests a user follows.
	ListByUser(context context.Context, userID string) ([]*Interest, error)
}
