/*
Package portalsdk is a client for the client hub portal API.

The portal never authenticates anyone itself. Callers obtain a session JWT
from the identity provider and hand it to the SDK:

	client := portalsdk.NewClient("https://portal.example.com")

	// Public endpoints
	health, err := client.GetLiveness(ctx)

	// Authenticated endpoints
	s := client.Session(sessionJWT)
	me, err := s.Me(ctx)
	inv, err := s.CreateInvite(ctx, hubID, portalsdk.CreateInviteRequest{
		Email:       "john@acme.com",
		AccessLevel: portalsdk.AccessViewOnly,
	})

# Errors

Every non-2xx response becomes an *APIError carrying the envelope code:

	var apiErr *portalsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == portalsdk.CodeConflict {
		reason := apiErr.Reason() // "invite_expired", "link_exhausted", ...
	}

The types in this package are the wire contract of the API; the server
renders its responses through them.
*/
package portalsdk
