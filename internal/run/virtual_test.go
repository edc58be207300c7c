// SPDX-License-Identifier: MPL-2.0

package run

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func virtualLineContext(t *testing.T, stdout, stderr *bytes.Buffer) LineContext {
	t.Helper()
	return LineContext{
		Dir: t.TempDir(),
		Env: []string{"PATH=/usr/bin:/bin", "GREETING=hello"},
		IO:  IO{Stdin: strings.NewReader(""), Stdout: stdout, Stderr: stderr},
	}
}

func TestVirtualRunLine(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	if rt.Name() != ModeVirtual {
		t.Errorf("Name() = %q, want %q", rt.Name(), ModeVirtual)
	}
	if !rt.Available() {
		t.Fatal("virtual runtime must always be available")
	}

	var stdout, stderr bytes.Buffer
	lc := virtualLineContext(t, &stdout, &stderr)

	res := rt.RunLine(context.Background(), "echo $GREETING world", lc)
	if res.IsFailure() {
		t.Fatalf("RunLine() = %+v, want success", res)
	}
	if got := stdout.String(); got != "hello world\n" {
		t.Errorf("stdout = %q, want %q", got, "hello world\n")
	}
}

func TestVirtualRunLineExitStatus(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	var stdout, stderr bytes.Buffer
	lc := virtualLineContext(t, &stdout, &stderr)

	res := rt.RunLine(context.Background(), "exit 7", lc)
	if res.ExitCode != 7 {
		t.Errorf("exit code = %v, want 7", res.ExitCode)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil (non-zero exit is not an infrastructure failure)", res.Err)
	}
}

func TestVirtualRunLineSyntaxError(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	var stdout, stderr bytes.Buffer
	lc := virtualLineContext(t, &stdout, &stderr)

	res := rt.RunLine(context.Background(), "if then fi (", lc)
	if !res.IsFailure() || res.Err == nil {
		t.Fatalf("RunLine() = %+v, want parse failure", res)
	}
}

func TestVirtualValidate(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	if err := rt.Validate("echo ok && true"); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := rt.Validate("for do ("); err == nil {
		t.Error("Validate() = nil, want syntax error")
	}
}

func TestVirtualRunLineCancelled(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	var stdout, stderr bytes.Buffer
	lc := virtualLineContext(t, &stdout, &stderr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := rt.RunLine(ctx, "echo never", lc)
	if !res.IsFailure() {
		t.Fatalf("RunLine() = %+v, want failure on cancelled context", res)
	}
}
