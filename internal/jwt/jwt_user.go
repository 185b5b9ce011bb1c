package jwt

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// NewUser hashes the registration password; the plaintext never leaves
// this function.
func NewUser(user RegisterUser) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	return User{
		Email:        user.Email,
		PasswordHash: string(hash),
	}, nil
}

func ValidatePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
