// Package mocks provides function-field mock implementations of the service
// and store interfaces for tests.
//
// Each mock falls back to its plain fields when the corresponding function
// field is nil:
//
//	tokens := &mocks.MockTokenService{
//	    VerifyFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrInvalidToken
//	    },
//	}
package mocks
