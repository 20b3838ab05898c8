package deskv1

import (
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype of the alarmdesk.v1 messages.
const CodecName = "json"

//nolint:gochecknoglobals // Frozen jsoniter configuration, safe for concurrent use.
var wireJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// codec marshals messages as JSON.
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	return wireJSON.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	return wireJSON.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

func init() { //nolint:gochecknoinits // Codecs must be registered before any connection is made.
	encoding.RegisterCodec(codec{})
}
