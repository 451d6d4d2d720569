// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides record IDs, login and session tokens for SGformer.

# Record IDs

GenerateID returns "<prefix>-<uuid>" using a random (v4) UUID:

	id, err := auth.GenerateID("form") // form-3f0c...

# Login

A Provider checks credentials. StaticProvider holds one administrator,
whose password is kept only as a bcrypt hash, and one guest user who
signs in without a password. Both come from configuration.

# Sessions

Tokens issues HS256 JWTs carrying the user's email and role:

	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	token, err := tokens.Issue(user)
	user, err := tokens.Verify(token)

Clients send the token as "Authorization: Bearer <token>". The role
middleware verifies it and stores the user with WithUser; handlers read
it back with UserFromContext.

# Roles

  - admin: manages forms, submissions, check-ins, mail and statistics
  - user: submits forms and downloads receipts

HasRole treats an admin as also holding the user role.
*/
package auth
