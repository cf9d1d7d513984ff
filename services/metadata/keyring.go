package metadata

import (
	"errors"
	"strings"
)

var errNoAPIKeys = errors.New("metadata: no api keys configured")

// keyring holds an ordered list of API credentials. Calls are attempted
// with each key in turn until one succeeds, so a quota-exhausted or
// revoked key degrades to the next one instead of failing the request.
type keyring struct {
	keys []string
}

func newKeyring(keys []string) keyring {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return keyring{keys: out}
}

func (k keyring) empty() bool {
	return len(k.keys) == 0
}

// do invokes fn with each key in order, stopping at the first success.
// The error from the last attempted key is returned when all fail.
func (k keyring) do(fn func(key string) error) error {
	if k.empty() {
		return errNoAPIKeys
	}
	var lastErr error
	for _, key := range k.keys {
		if err := fn(key); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
