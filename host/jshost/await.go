//go:build js && wasm

package jshost

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

// ErrRejected is returned when an awaited promise rejects.
var ErrRejected = errors.New("jshost: promise rejected")

// await blocks until p settles or ctx is done.
// It must not be called from a JS callback.
func await(ctx context.Context, p js.Value) (js.Value, error) {
	type result struct {
		v   js.Value
		err error
	}
	done := make(chan result, 1)

	then := js.FuncOf(func(_ js.Value, args []js.Value) any {
		done <- result{v: arg(args)}
		return nil
	})
	defer then.Release()
	catch := js.FuncOf(func(_ js.Value, args []js.Value) any {
		done <- result{err: fmt.Errorf("%w: %s", ErrRejected, describe(arg(args)))}
		return nil
	})
	defer catch.Release()

	p.Call("then", then, catch)

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

func arg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

func describe(v js.Value) string {
	if v.Type() == js.TypeObject && v.Get("message").Type() == js.TypeString {
		return v.Get("message").String()
	}
	return v.String()
}
