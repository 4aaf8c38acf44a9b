package domain

// ClientCredentials identifies the application registered with Yammer.
// See https://www.yammer.com/client_applications.
type ClientCredentials struct {
	ApplicationKey    string
	ApplicationSecret string
}

// UserCredentials are the username and password typed into the login form.
type UserCredentials struct {
	Username string
	Password string
}

// AccessToken is an opaque OAuth bearer token.
type AccessToken string

// String masks the token so it can be logged safely.
func (t AccessToken) String() string {
	if len(t) <= 4 {
		return "*****"
	}
	return "*****" + string(t[len(t)-4:])
}

// Value returns the raw token for use on the wire.
func (t AccessToken) Value() string {
	return string(t)
}
