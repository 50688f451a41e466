// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package template

import "context"

// Repository defines the data access contract for the template catalog.
type Repository interface {
	List(context context.Context) ([]*Template, error)
	GetByID(context context.Context, id int) (*Template, error)
	Create(context context.Context, template *Template) error
	Update(context context.Context, template *Template) error
	Delete(context context.Context, id int) error
}
