// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth

import "strings"

// IdentifierKind discriminates the two ways a member can identify themselves.
type IdentifierKind string

const (
	// IdentifierEmail routes lookups through the email column.
	IdentifierEmail IdentifierKind = "email"

	// IdentifierPhone routes lookups through the phone column.
	IdentifierPhone IdentifierKind = "phone"
)

// Identifier is a classified login identifier: the raw value plus which
// account column it should be matched against.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// ClassifyIdentifier decides whether a raw identifier is an email or a phone
// number.
//
// # Classification Rule
//
// The presence of '@' anywhere in the string makes it an email; everything
// else is treated as a phone number. The rule is intentionally this blunt:
// login must route "a@b" to the email column even though it would fail email
// validation at registration time, so that a mistyped email never triggers a
// phone lookup.
func ClassifyIdentifier(raw string) Identifier {
	if strings.Contains(raw, "@") {
		return Identifier{Kind: IdentifierEmail, Value: raw}
	}
	return Identifier{Kind: IdentifierPhone, Value: raw}
}
