package optional

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Of 値が指定されているかどうかを保持するオプショナル型
type Of[T any] struct {
	V     T
	Valid bool
}

// From 値からOfを生成します
func From[T any](v T) Of[T] {
	return Of[T]{V: v, Valid: true}
}

// FromPtr ポインタからOfを生成します nilの場合は無効値になります
func FromPtr[T any](v *T) Of[T] {
	if v == nil {
		return Of[T]{}
	}
	return From(*v)
}

// ValueOrZero 有効な場合は値を、無効な場合はゼロ値を返します
func (o Of[T]) ValueOrZero() T {
	if o.Valid {
		return o.V
	}
	var zero T
	return zero
}

// Ptr 有効な場合は値へのポインタを、無効な場合はnilを返します
func (o Of[T]) Ptr() *T {
	if o.Valid {
		return &o.V
	}
	return nil
}

var jsonNull = []byte("null")

// MarshalJSON encoding/json.Marshaler 実装
func (o Of[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(o.V)
}

// UnmarshalJSON encoding/json.Unmarshaler 実装
func (o *Of[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*o = Of[T]{}
		return nil
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &o.V); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalText encoding.TextMarshaler 実装
func (o Of[T]) MarshalText() ([]byte, error) {
	if !o.Valid {
		return []byte{}, nil
	}
	if m, ok := any(o.V).(encoding.TextMarshaler); ok {
		return m.MarshalText()
	}
	switch v := any(o.V).(type) {
	case string:
		return []byte(v), nil
	case bool:
		return []byte(strconv.FormatBool(v)), nil
	case int:
		return []byte(strconv.Itoa(v)), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", o.V)
	}
}

// UnmarshalText encoding.TextUnmarshaler 実装
func (o *Of[T]) UnmarshalText(text []byte) error {
	if len(text) == 0 || bytes.Equal(text, jsonNull) {
		*o = Of[T]{}
		return nil
	}
	if err := o.setFromText(text); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o *Of[T]) setFromText(text []byte) error {
	if u, ok := any(&o.V).(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText(text)
	}
	switch p := any(&o.V).(type) {
	case *string:
		*p = string(text)
		return nil
	case *bool:
		v, err := strconv.ParseBool(string(text))
		if err != nil {
			return err
		}
		*p = v
		return nil
	case *int:
		v, err := strconv.Atoi(string(text))
		if err != nil {
			return err
		}
		*p = v
		return nil
	default:
		return fmt.Errorf("unsupported type: %T", o.V)
	}
}

// Scan database/sql.Scanner 実装
func (o *Of[T]) Scan(src any) error {
	if src == nil {
		*o = Of[T]{}
		return nil
	}
	if sc, ok := any(&o.V).(sql.Scanner); ok {
		if err := sc.Scan(src); err != nil {
			return err
		}
		o.Valid = true
		return nil
	}
	switch s := src.(type) {
	case time.Time:
		if p, ok := any(&o.V).(*time.Time); ok {
			*p = s
			o.Valid = true
			return nil
		}
	case string:
		return o.UnmarshalText([]byte(s))
	case []byte:
		return o.UnmarshalText(s)
	}
	return fmt.Errorf("failed to scan %T", src)
}

// Value database/sql/driver.Valuer 実装
func (o Of[T]) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(o.V)
}
