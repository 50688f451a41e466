// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package users

import (
	"context"

	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

// Repository defines the data access contract for account administration.
type Repository interface {
	// List returns accounts filtered by search (matched against name, email,
	// and phone; empty means no filter) with the total count.
	List(context context.Context, params pagination.Params, search string) ([]*Account, int, error)

	GetByID(context context.Context, id string) (*Account, error)

	UpdateRole(context context.Context, id string, role sec.UserRole) error
}
