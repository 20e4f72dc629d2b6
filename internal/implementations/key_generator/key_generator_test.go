package keygenerator

import (
	"registrar/internal/core/domain/signup"
	"testing"
)

func TestKeysAreWellFormed(t *testing.T) {
	generator := NewSHA1()
	for _, seed := range []string{"", "alice", "john@example.com", "Ünïcode"} {
		salt, key := generator.GenerateKey(seed)
		if len(salt) != 5 {
			t.Fatalf("salt must be 5 characters long: %q", salt)
		}
		if !signup.ActivationKey(key).IsWellFormed() {
			t.Fatalf("malformed key %q for seed %q", key, seed)
		}
	}
}

func TestKeysAreUnique(t *testing.T) {
	generator := NewSHA1()
	keys := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		_, key := generator.GenerateKey("alice")
		if _, ok := keys[key]; ok {
			t.Fatalf("key %v already exists", key)
		}
		keys[key] = struct{}{}
	}
}
