package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/accounts/logger"
)

const (
	jsonContentType = "application/json; charset=UTF-8"
	textContentType = "text/plain; charset=UTF-8"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes the forms of response the service writes:
//
//	Json
//	Err
//	Text
//
// A single Responder suffices for the whole application.
// When handling a specific HTTP request, calling code supplies status codes,
// data and errors through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(nil)
	}

	return d
}

// Err responds with {"error": err.Error()}, logging the error causing the failure state.
//
// The default status code is 500.
// Use when no other response can be formed, e.g. after recovering from a panic.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append([]Fn{Err(err)}, opts...)...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if rr == nil {
		rr = &Response{code: http.StatusInternalServerError}
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	// Err may be called after the body was read or alongside a panic,
	// so it writes without the pool.
	b, _ := json.Marshal(map[string]string{"error": msg})

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(rr.code)
	w.Write(append(b, '\n'))
}

// Json responds with data in JSON format, as set by Data and Msg, and sets appropriate headers.
//
// The default status code is 200.
// Without data, the body is an empty object.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	var payload any = struct{}{}
	if rr.data != nil {
		payload = rr.data
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Text responds with body as plain text.
//
// The default status code is 200.
func (doer *Responder) Text(w http.ResponseWriter, r *http.Request, body string, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody && r.Body != nil {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	w.Header().Set("Content-Type", textContentType)
	w.WriteHeader(rr.code)
	if _, err := fmt.Fprint(w, body); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	var err error
	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err = opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	var i int
	for i < len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE: redo shrinks redos; an unchanged length means
			// the remaining options only ever return errors.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	if len(redos) != 0 {
		err = nil
		for _, opt := range redos {
			nested := opt(*doer, resp)
			if err == nil {
				err = nested
				continue
			}
			err = fmt.Errorf("%w: %s", nested, err)
		}
	} else {
		err = nil
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
