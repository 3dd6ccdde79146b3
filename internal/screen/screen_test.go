package screen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ppiankov/chemscreen/internal/element"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newScreener(t *testing.T) *Screener {
	t.Helper()
	p, err := element.New()
	require.NoError(t, err)
	return New(p, WithLogger(zap.NewNop()))
}

// writeStates writes a custom oxidation state file and returns its path
func writeStates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "states.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEachCombination(t *testing.T) {
	var got [][]int
	eachCombination([][]int{{1, 2}, {-1}, {3, 4}}, func(c []int) bool {
		got = append(got, append([]int(nil), c...))
		return true
	})
	require.Equal(t, [][]int{{1, -1, 3}, {1, -1, 4}, {2, -1, 3}, {2, -1, 4}}, got)

	calls := 0
	eachCombination([][]int{{1}, {}}, func([]int) bool { calls++; return true })
	require.Zero(t, calls)

	eachCombination([][]int{{1, 2, 3}}, func([]int) bool { calls++; return false })
	require.Equal(t, 1, calls)
}
