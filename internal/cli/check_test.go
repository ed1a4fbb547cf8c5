package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/proofgraph/proofgraph/pkg/errors"
)

// writeGraphFile writes a small snapshot with a technical node in the middle:
// Nat.add_comm -> Nat.instAdd -> Nat.succ_add
func writeGraphFile(t *testing.T) string {
	t.Helper()
	doc := `{
		"nodes": [
			{"id": "Nat.add_comm", "kind": "theorem"},
			{"id": "Nat.instAdd", "kind": "instance"},
			{"id": "Nat.succ_add", "kind": "theorem"}
		],
		"edges": [
			{"from": "Nat.add_comm", "to": "Nat.instAdd"},
			{"from": "Nat.instAdd", "to": "Nat.succ_add"}
		]
	}`
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	return path
}

func TestRunCheckSafe(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := writeGraphFile(t)

	err := c.runCheck(context.Background(), path, "Nat.add_comm", "Nat.succ_add")
	if err != nil {
		t.Errorf("runCheck() safe edge error: %v", err)
	}
}

func TestRunCheckCycle(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := writeGraphFile(t)

	err := c.runCheck(context.Background(), path, "Nat.succ_add", "Nat.add_comm")
	if err == nil {
		t.Fatal("runCheck() should reject an edge closing a cycle")
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeEdgeCycle {
		t.Errorf("error code = %q, want %q", code, pkgerrors.ErrCodeEdgeCycle)
	}
}

func TestRunCheckSelfLoop(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := writeGraphFile(t)

	err := c.runCheck(context.Background(), path, "Nat.add_comm", "Nat.add_comm")
	if err == nil {
		t.Fatal("runCheck() should reject a self-loop")
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeEdgeCycle {
		t.Errorf("error code = %q, want %q", code, pkgerrors.ErrCodeEdgeCycle)
	}
}

func TestRunCheckUnknownNode(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := writeGraphFile(t)

	err := c.runCheck(context.Background(), path, "Nat.add_comm", "Nat.mul_comm")
	if err == nil {
		t.Fatal("runCheck() should fail for an unknown node")
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeNodeNotFound {
		t.Errorf("error code = %q, want %q", code, pkgerrors.ErrCodeNodeNotFound)
	}
}

func TestRunCheckInvalidEndpoint(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := writeGraphFile(t)

	err := c.runCheck(context.Background(), path, "", "Nat.succ_add")
	if err == nil {
		t.Fatal("runCheck() should fail for an empty endpoint")
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodeInvalidEdge {
		t.Errorf("error code = %q, want %q", code, pkgerrors.ErrCodeInvalidEdge)
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)

	err := c.runCheck(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "a", "b")
	if err == nil {
		t.Fatal("runCheck() should fail for a missing snapshot")
	}
}
