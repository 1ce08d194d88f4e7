package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

const decoyPassword = "portal-decoy-password"

// DecoyHash is compared against when the email is unknown. It must share the
// cost of the stored hashes so both failure paths take the same time.
type DecoyHash struct {
	hash []byte
}

// NewDecoyHash hashes a fixed password at cost, clamped like HashPassword.
func NewDecoyHash(cost int) (*DecoyHash, error) {
	hashed, err := HashPassword(decoyPassword, cost)
	if err != nil {
		return nil, err
	}
	return &DecoyHash{hash: []byte(hashed)}, nil
}

// Burn performs a comparison whose result is discarded.
func (d *DecoyHash) Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(d.hash, []byte(plain))
}

// Cost reports the bcrypt cost of the decoy.
func (d *DecoyHash) Cost() int {
	cost, _ := bcrypt.Cost(d.hash)
	return cost
}
