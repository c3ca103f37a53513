package radiov1

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// CodecName is the name the codec is registered under.
// It replaces connect's protobuf JSON codec for the plain Go messages of this package.
const CodecName = "json"

// Codec marshals radio247 messages as JSON.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string {
	return CodecName
}

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return errors.Wrap(err, "unmarshal message")
	}
	return nil
}
