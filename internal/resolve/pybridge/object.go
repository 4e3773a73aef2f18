package pybridge

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Object is a reference to a live object inside the helper.
type Object struct {
	client *Client
	handle int64
}

// Ref returns the wire reference to o.
func (o Object) Ref() Ref {
	return Ref{Handle: o.handle}
}

// Handle returns the helper-side handle number.
func (o Object) Handle() int64 {
	return o.handle
}

type referent interface {
	Ref() Ref
}

// refOf returns the wire reference of a handle created by this package.
func refOf(v any) (Ref, error) {
	r, isRef := v.(referent)
	if !isRef {
		return Ref{}, fmt.Errorf("pybridge: %T is not a helper object", v)
	}
	return r.Ref(), nil
}

func refsOf[T any](items []T) ([]Ref, error) {
	refs := make([]Ref, 0, len(items))
	for _, item := range items {
		r, err := refOf(item)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, nil
}

func (o Object) call(ctx context.Context, method string, args ...any) (gjson.Result, error) {
	return o.client.Call(ctx, o.handle, method, args...)
}

// child calls method and wraps a returned handle. A None answer yields nil.
func (o Object) child(ctx context.Context, method string, args ...any) (*Object, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	h, isHandle := handleOf(v)
	if !isHandle {
		return nil, nil
	}
	return &Object{client: o.client, handle: h}, nil
}

// children calls method and wraps every handle in the returned listing.
func (o Object) children(ctx context.Context, method string, args ...any) ([]Object, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	var out []Object
	for _, item := range elements(v) {
		if h, isHandle := handleOf(item); isHandle {
			out = append(out, Object{client: o.client, handle: h})
		}
	}
	return out, nil
}

func (o Object) boolean(ctx context.Context, method string, args ...any) (bool, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

func (o Object) str(ctx context.Context, method string, args ...any) (string, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	if v.Type == gjson.Null {
		return "", nil
	}
	return v.String(), nil
}

func (o Object) integer(ctx context.Context, method string, args ...any) (int, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	return int(v.Int()), nil
}

func (o Object) float(ctx context.Context, method string, args ...any) (float64, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func (o Object) strings(ctx context.Context, method string, args ...any) ([]string, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return stringsOf(v), nil
}

func (o Object) stringMap(ctx context.Context, method string, args ...any) (map[string]string, error) {
	v, err := o.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return stringMapOf(v), nil
}

// wrap turns a possibly nil Object into a typed handle, keeping nil
// answers as nil interfaces.
func wrap[T any](o *Object, err error, mk func(Object) T) (T, error) {
	var zero T
	if err != nil || o == nil {
		return zero, err
	}
	return mk(*o), nil
}

func wrapAll[T any](objs []Object, err error, mk func(Object) T) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(objs))
	for _, o := range objs {
		out = append(out, mk(o))
	}
	return out, nil
}
