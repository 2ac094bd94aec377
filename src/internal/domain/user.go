package domain

// UserDetails is a credential-store entry. PasswordHash holds a bcrypt digest;
// the clear-text password is never retained after hashing. Accounts reference
// entries by Username only, there is no stored back-pointer.
type UserDetails struct {
	Username     string
	Name         string
	City         string
	Email        string
	Phone        string
	PasswordHash string
}
