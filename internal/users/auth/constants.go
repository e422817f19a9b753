// Copyright (c) 2026 Wanderstay. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3

	// MaxUsernameLength caps usernames to keep them display-friendly.
	MaxUsernameLength = 30

	// MinPasswordLength is the minimum accepted password length.
	// Bcrypt handles the rest; we do not impose composition rules.
	MinPasswordLength = 8

	// MaxEmailLength caps the email column per RFC 5321 practical limits.
	MaxEmailLength = 254
)
