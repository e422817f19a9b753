// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec provides cryptographic primitives, identity types, and the
ownership guard.

# Architecture

This package isolates security-sensitive code (hashing, token signing,
authorization decisions) from the domain logic. It acts as an Infrastructure
service injected into the Application layer via small interfaces, and carries
no dependency on storage or transport.
*/
package sec

// Identity is the resolved actor behind a request.
//
// It is reconstructed from the signed identity token stored inside the
// session record, so request handling does not need a database round-trip
// to know who is acting. A nil *Identity means the request is anonymous.
type Identity struct {
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}
