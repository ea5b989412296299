package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("BUILDTRACK_TEST_MODE", "1")
		if os.Getenv("LOGIN_DELAY") == "" {
			_ = os.Setenv("LOGIN_DELAY", "0s")
		}
		if os.Getenv("MOCK_LATENCY_SCALE") == "" {
			_ = os.Setenv("MOCK_LATENCY_SCALE", "0")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
