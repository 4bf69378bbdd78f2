package password

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a configurable cost. The produced digest is
// self-describing: algorithm, cost and salt are embedded, so Verify
// needs nothing beyond the digest itself.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a salted one-way hash of plain. A fresh salt is drawn
// per call, so hashing the same input twice yields distinct digests.
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. Malformed digests are a
// verification failure, not an error. The comparison is constant time.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
