package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetRequestData(ctx))
	assert.Nil(t, GetTraceData(ctx))
	assert.Zero(t, CallerID(ctx))
	assert.Empty(t, LogFields(ctx))
}

func TestLogFieldsCarryTraceAndCaller(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	ctx = WithRequestData(ctx, &RequestData{AccountID: 9})

	assert.Equal(t, uint(9), CallerID(ctx))
	assert.Equal(t, []interface{}{"trace_id", "t1", "request_id", "r1", "account_id", uint(9)}, LogFields(ctx))
}
