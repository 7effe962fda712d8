package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("unexpected hash format %q", hash)
	}
	if !VerifyPassword(hash, "s3cret!") {
		t.Error("VerifyPassword() rejected the right password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	a, _ := HashPassword("same", bcrypt.MinCost)
	b, _ := HashPassword("same", bcrypt.MinCost)
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatal(err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}

func TestBurnVerifyAlwaysFalse(t *testing.T) {
	if BurnVerify("not-a-real-password", bcrypt.MinCost) {
		t.Error("BurnVerify() returned true")
	}
}

func TestBurnHashMatchesConfiguredCost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{bcrypt.MinCost, bcrypt.MinCost},
		{6, 6},
		{0, bcrypt.DefaultCost},
		{99, bcrypt.DefaultCost},
	}
	for _, tt := range tests {
		got, err := bcrypt.Cost(burnHash(tt.in))
		if err != nil {
			t.Fatalf("burnHash(%d): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("burnHash(%d) cost = %d, want %d", tt.in, got, tt.want)
		}
	}
	if &burnHash(6)[0] != &burnHash(6)[0] {
		t.Error("burnHash(6) was rebuilt")
	}
}
