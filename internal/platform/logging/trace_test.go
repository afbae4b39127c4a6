package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleTraceparent = "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"

func TestParseTraceparent(t *testing.T) {
	tc, ok := parseTraceparent(sampleTraceparent)
	if !ok {
		t.Fatal("expected header to parse")
	}
	if tc.traceID != "ab42124a3c573678d4d8b21ba52df3bf" || tc.spanID != "d21f7bc17caa5aba" || !tc.sampled {
		t.Fatalf("unexpected trace context: %+v", tc)
	}

	tc, ok = parseTraceparent("00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-00")
	if !ok || tc.sampled {
		t.Fatalf("expected unsampled trace, got %+v", tc)
	}

	if _, ok := parseTraceparent("garbage"); ok {
		t.Fatal("expected invalid header to be rejected")
	}
}

func TestTraceResource(t *testing.T) {
	want := "projects/demo/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if got := traceResource(sampleTraceparent, "demo"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := traceResource(sampleTraceparent, ""); got != "" {
		t.Fatalf("expected empty resource without project, got %s", got)
	}
	if got := traceResource("invalid", "demo"); got != "" {
		t.Fatalf("expected empty resource for invalid header, got %s", got)
	}
}

func TestLoggerWithTraceFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	loggerWithTrace(zap.New(core), sampleTraceparent, "demo", "req-1").Info("hello")

	fields := recorded.All()[0].ContextMap()
	if fields["logging.googleapis.com/trace"] != "projects/demo/traces/ab42124a3c573678d4d8b21ba52df3bf" {
		t.Fatalf("missing trace field: %v", fields)
	}
	if fields["logging.googleapis.com/spanId"] != "d21f7bc17caa5aba" {
		t.Fatalf("missing span field: %v", fields)
	}
	if fields["logging.googleapis.com/trace_sampled"] != true {
		t.Fatalf("missing sampled field: %v", fields)
	}
	if fields["requestId"] != "req-1" {
		t.Fatalf("missing requestId: %v", fields)
	}
}

func TestLoggerWithTraceNoFields(t *testing.T) {
	base := zap.NewNop()
	if loggerWithTrace(base, "", "", "") != base {
		t.Fatal("expected base logger to be returned unchanged")
	}
	if loggerWithTrace(nil, "", "", "") == nil {
		t.Fatal("expected nop logger for nil base")
	}
}
