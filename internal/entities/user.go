package entities

// User is an account or an attribution stub. Stubs carry only the
// username; the password is set only when the value represents login
// credentials or a full account record.
type User struct {
	Username string
	Password string
}

// Ref returns an attribution-only copy with the password stripped.
func (u User) Ref() User {
	return User{Username: u.Username}
}
