package profile

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var errCorrupt = errors.New("stored profile is not valid JSON")

// record is the persisted layout. Company is optional on read; missing
// keys decode as empty strings.
type record struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func toRecord(p Profile) record {
	return record(p)
}

func (r record) profile() Profile {
	return Profile(r)
}

func encodeRecord(p Profile) ([]byte, error) {
	return sonic.Marshal(toRecord(p))
}

func decodeRecord(data []byte) (Profile, error) {
	var r record
	if err := sonic.Unmarshal(data, &r); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	return r.profile(), nil
}
