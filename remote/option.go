package remote

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Option is an explicit present/absent wrapper. The zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr maps nil to None and anything else to Some.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// OrElse returns the value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// MarshalJSON encodes absent as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// EncodeMsgpack encodes absent as nil.
func (o Option[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !o.ok {
		return enc.EncodeNil()
	}
	return enc.Encode(o.value)
}

// DecodeMsgpack decodes nil as absent.
func (o *Option[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var p *T
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*o = FromPtr(p)
	return nil
}
