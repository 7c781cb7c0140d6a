package elementalcheck

import (
	"os"
	"path/filepath"
	"testing"
)

const fixture = `package fixture

func Logistic(x float64) float64 { return 1 / (1 + 1) }

func SmoothMax(a, b, t float64) float64 { return a }

func variadicNotElemental(xs ...float64) float64 { return 0 }

func wrongParamType(x int) float64 { return 0 }

func wrongReturnType(x float64) int { return 0 }

type box struct{}

func (box) NotAFreeFunction(x float64) float64 { return x }
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fixture.go"), []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCheckFindsElementalSignatures(t *testing.T) {
	dir := writeFixture(t)
	candidates, err := Check(dir)
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]bool{}
	for _, c := range candidates {
		got[c.Name] = true
	}

	for _, want := range []string{"Logistic", "SmoothMax"} {
		if !got[want] {
			t.Errorf("expected %s to be reported as an elemental candidate", want)
		}
	}
	for _, notWant := range []string{"variadicNotElemental", "wrongParamType", "wrongReturnType", "NotAFreeFunction"} {
		if got[notWant] {
			t.Errorf("did not expect %s to be reported as an elemental candidate", notWant)
		}
	}
}

func TestCheckRejectsUnparsableDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package fixture\nfunc ( {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Check(dir); err == nil {
		t.Error("expected a parse error, got nil")
	}
}
