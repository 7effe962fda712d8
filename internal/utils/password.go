package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.  Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), clampCost(cost))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func clampCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// burnHashes holds one throwaway hash per cost, built on first use.
var burnHashes sync.Map

func burnHash(cost int) []byte {
	cost = clampCost(cost)
	if h, ok := burnHashes.Load(cost); ok {
		return h.([]byte)
	}
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	v, _ := burnHashes.LoadOrStore(cost, h)
	return v.([]byte)
}

// BurnVerify compares plain against a throwaway hash of the same cost as
// real password hashes, so a login naming an unknown email spends as long as
// one with a wrong password.  It always reports false.
func BurnVerify(plain string, cost int) bool {
	_ = bcrypt.CompareHashAndPassword(burnHash(cost), []byte(plain))
	return false
}
