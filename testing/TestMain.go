// Package testing switches the process into test mode. Test packages import it
// for its side effects.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

// testEnv is applied to variables the caller has not set already.
var testEnv = map[string]string{
	"AGRIPROJET_TEST_MODE": "1",
	"APP_ENV":              "test",
	"GOTENBERG_URL":        "http://127.0.0.1:0",
}

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		for key, value := range testEnv {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
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
