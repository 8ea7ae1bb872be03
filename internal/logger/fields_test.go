package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  endpoint  ", Value: "  http://localhost:8000  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "endpoint" || fields[0].String != "http://localhost:8000" {
		t.Fatalf("unexpected endpoint field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestSubmissionFields(t *testing.T) {
	fields := SubmissionFields("  http://localhost:8000  ", "resume.pdf")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldEndpoint || fields[0].String != "http://localhost:8000" {
		t.Fatalf("unexpected endpoint field: %+v", fields[0])
	}

	if fields[1].Key != FieldResume || fields[1].String != "resume.pdf" {
		t.Fatalf("unexpected resume field: %+v", fields[1])
	}

	empty := SubmissionFields("", "")
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithSubmissionFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithSubmissionFields(logger, "http://localhost:8000", "resume.pdf")
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldEndpoint] != "http://localhost:8000" {
		t.Fatalf("expected endpoint field, got %q", ctx[FieldEndpoint])
	}

	if ctx[FieldResume] != "resume.pdf" {
		t.Fatalf("expected resume field, got %q", ctx[FieldResume])
	}

	enriched = WithSubmissionFields(nil, "http://localhost:8000", "resume.pdf")
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}
