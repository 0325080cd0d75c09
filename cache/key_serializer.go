package cache

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// resourceKeySerializer builds keys of the form resource::arg::arg.
// Scalars keep their literal form so keys stay readable in logs and prefix
// scans. Anything composite is reduced to a checksum of its msgpack encoding.
type resourceKeySerializer struct{}

// NewDefaultKeySerializer creates the serializer used by the orchestrator.
func NewDefaultKeySerializer() KeySerializer {
	return resourceKeySerializer{}
}

// SerializeKey returns resource unchanged when there are no args.
func (resourceKeySerializer) SerializeKey(resource string, args ...any) string {
	if len(args) == 0 {
		return resource
	}

	var b strings.Builder
	b.WriteString(resource)
	for _, arg := range args {
		b.WriteString(KeySeparator)
		b.WriteString(serializeArg(arg))
	}
	return b.String()
}

func serializeArg(v any) string {
	if v == nil {
		return "nil"
	}

	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "nil"
		}
		return serializeArg(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	}

	return digest(v)
}

func digest(v any) string {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return "type:" + reflect.TypeOf(v).String()
	}
	return "h:" + strconv.FormatUint(xxhash.Sum64(data), 16)
}
