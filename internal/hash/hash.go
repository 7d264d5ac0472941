package hash

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 12

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are cut to
// this length before hashing and before comparing.
const MaxPasswordBytes = 72

// HashPassword hashes with DefaultCost. Zero cost also means DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	hashbytes, err := bcrypt.GenerateFromPassword(clip(password), cost)
	if err != nil {
		return "", err
	}

	return string(hashbytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), clip(password)) == nil
}

func clip(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
