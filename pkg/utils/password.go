package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost stays at the library default; raise it only together with a
// rehash-on-login migration.
const bcryptCost = bcrypt.DefaultCost

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b)
}

// CheckPassword reports whether pw matches the stored bcrypt hash.
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
