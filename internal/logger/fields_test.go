package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  service  ", Value: "  petfinder  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "service" || fields[0].String != "petfinder" {
		t.Fatalf("unexpected service field: %+v", fields[0])
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

func TestForService(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForService(zap.New(core), "thecatapi").Info("test log")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldService] != "thecatapi" {
		t.Fatalf("expected service field, got %v", ctx)
	}

	if ForService(nil, "petfinder") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}

func TestForRun(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ForRun(logger, "run-1", "").Info("before save")
	ForRun(logger, "run-1", "user_12345_1").Info("after save")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	before := entries[0].ContextMap()
	if before[FieldRunID] != "run-1" {
		t.Fatalf("expected run id, got %v", before)
	}
	if _, ok := before[FieldSessionID]; ok {
		t.Fatalf("did not expect empty session id field")
	}

	after := entries[1].ContextMap()
	if after[FieldSessionID] != "user_12345_1" {
		t.Fatalf("expected session id, got %v", after)
	}
}
