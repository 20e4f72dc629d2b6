package signup

type KeyGenerator interface {
	// GenerateKey returns a random salt and a 40 characters hex key derived from it and seed.
	GenerateKey(seed string) (salt string, key string)
}
