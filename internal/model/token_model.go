package model

// AccessToken is the persisted record of one issued session token.
// Rows are append-only; expiry is the only lifecycle control.
type AccessToken struct {
	JTI          string `json:"jti"`
	Sub          string `json:"sub"`
	Iat          int64  `json:"iat"`
	Exp          int64  `json:"exp"`
	Nbf          *int64 `json:"nbf,omitempty"`
	Aud          string `json:"aud"`
	Iss          string `json:"iss"`
	UserAccessID string `json:"user_access_id"`
}
