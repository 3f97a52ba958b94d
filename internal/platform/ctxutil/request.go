// Package ctxutil carries per-request identity on a context.Context.
package ctxutil

import (
	"context"
	"time"
)

type (
	requestDataKey struct{}
	traceDataKey   struct{}
)

// RequestData is the authenticated caller, as carried by a verified token.
type RequestData struct {
	AccountID uint
	Email     string
	Name      string
	Role      int
	TokenID   string
	ExpiresAt time.Time
}

// TraceData correlates log lines and responses for one request.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(requestDataKey{}).(*RequestData)
	return rd
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceDataKey{}).(*TraceData)
	return td
}

// CallerID returns the authenticated account id, or 0 when there is none.
func CallerID(ctx context.Context) uint {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.AccountID
	}
	return 0
}

// LogFields returns the request's correlation fields as key/value pairs.
func LogFields(ctx context.Context) []interface{} {
	var kv []interface{}
	if td := GetTraceData(ctx); td != nil {
		kv = append(kv, "trace_id", td.TraceID, "request_id", td.RequestID)
	}
	if id := CallerID(ctx); id != 0 {
		kv = append(kv, "account_id", id)
	}
	return kv
}
