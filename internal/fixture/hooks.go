package fixture

import "testing"

// TestingT is the part of testing.TB the fixture reports through.
// It also satisfies testify's assert.TestingT and require.TestingT.
type TestingT interface {
	Helper()
	Name() string
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	FailNow()
	Cleanup(func())
}

var _ TestingT = (testing.TB)(nil)

// Hooks is the per-test lifecycle a runner drives: Setup before the test
// body and Teardown after it, whatever the outcome.
type Hooks interface {
	Setup(t TestingT) error
	Teardown(t TestingT) error
}

// Attach runs h.Setup, stopping the test if it fails, and registers
// h.Teardown to run when t finishes.
func Attach(t TestingT, h Hooks) {
	t.Helper()

	if err := h.Setup(t); err != nil {
		t.Fatalf("fixture setup: %v", err)
		return
	}

	t.Cleanup(func() {
		if err := h.Teardown(t); err != nil {
			t.Errorf("fixture teardown: %v", err)
		}
	})
}

// Run runs fn as a subtest of t wrapped in h's lifecycle.
func Run(t *testing.T, name string, h Hooks, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(name, func(t *testing.T) {
		Attach(t, h)
		fn(t)
	})
}
