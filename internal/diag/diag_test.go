package diag

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quanta/internal/engine"
)

func TestGuard_NoPanic(t *testing.T) {
	rec := &Recorder{}
	ran := false

	Guard(rec, func() { ran = true })

	assert.True(t, ran)
	assert.Empty(t, rec.Reports())
}

func TestGuard_ReportsThenRepanics(t *testing.T) {
	rec := &Recorder{}
	fatal := engine.NewPoppedLastStateError("menu")

	assert.PanicsWithValue(t, fatal, func() {
		Guard(rec, func() { panic(fatal) })
	})

	reports := rec.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, engine.ErrCodePoppedLastState, reports[0].Code)
	assert.Equal(t, "POPPED_LAST_STATE: popped the last state (state=menu)", reports[0].Message)
	assert.Contains(t, reports[0].Stack, "goroutine")
}

func TestGuard_PlainPanic(t *testing.T) {
	rec := &Recorder{}

	assert.PanicsWithValue(t, "index out of range", func() {
		Guard(rec, func() { panic("index out of range") })
	})

	reports := rec.Reports()
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Code)
	assert.Equal(t, "index out of range", reports[0].Message)
}

func TestGuard_NilSink(t *testing.T) {
	assert.Panics(t, func() {
		Guard(nil, func() { panic(errors.New("boom")) })
	})
}

func TestMulti(t *testing.T) {
	var logBuf, outBuf bytes.Buffer
	rec := &Recorder{}
	sink := Multi{
		SlogSink{Logger: slog.New(slog.NewTextHandler(&logBuf, nil))},
		WriterSink{W: &outBuf},
		rec,
	}

	sink.Report(NewReport(engine.NewBorrowConflictError("surface"), []byte("stack here")))

	assert.Contains(t, logBuf.String(), "uncaught failure")
	assert.Contains(t, logBuf.String(), "code=BORROW_CONFLICT")
	assert.Equal(t, "panic: BORROW_CONFLICT: surface is already borrowed (resource=surface)\n\nstack here", outBuf.String())
	assert.Len(t, rec.Reports(), 1)
}

func TestSinkFunc(t *testing.T) {
	var got Report
	SinkFunc(func(r Report) { got = r }).Report(Report{Message: "x"})
	assert.Equal(t, "x", got.Message)
}
