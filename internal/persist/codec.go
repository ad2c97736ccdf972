// Package persist provides durable backends for the session snapshot:
// a JSON file, a Redis key, a SQLite row, and an in-memory record.
// Every backend stores the same JSON encoding and reports a malformed
// record as ErrCorrupt.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beanmart/beanmart/pkg/domain"
)

// ErrCorrupt wraps decode failures of a stored snapshot.
var ErrCorrupt = errors.New("persist: corrupt session snapshot")

func encode(s domain.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("persist: encode snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &s, nil
}
