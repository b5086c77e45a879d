package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum accepted password length
	MinLength = 8
)

var (
	costMu sync.RWMutex
	cost   = DefaultCost

	dummyOnce sync.Once
	dummyHash []byte
)

// SetCost changes the bcrypt cost used by Hash. Tests lower it to bcrypt.MinCost.
func SetCost(c int) {
	costMu.Lock()
	defer costMu.Unlock()
	cost = c
}

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	costMu.RLock()
	c := cost
	costMu.RUnlock()

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), c)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyMissing burns a bcrypt comparison for an unknown account so that
// login latency does not reveal whether a username exists.
func VerifyMissing(password string) {
	dummyOnce.Do(func() {
		costMu.RLock()
		c := cost
		costMu.RUnlock()
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("roomfinder-placeholder"), c)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	return len(password) >= MinLength
}
