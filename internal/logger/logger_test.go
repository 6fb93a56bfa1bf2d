package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC)
}

func TestLogStampsAndAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "solar.txt")
	l := New(path)
	l.now = fixedClock

	l.Log("Sun loaded.")
	l.Logf("%s loaded.", "Earth")

	assert.Equal(t, []string{
		"[2024-03-09 17:04:05] Sun loaded.",
		"[2024-03-09 17:04:05] Earth loaded.",
	}, l.Lines())
	assert.Equal(t, "[2024-03-09 17:04:05] Earth loaded.", l.Last())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-09 17:04:05] Sun loaded.\n[2024-03-09 17:04:05] Earth loaded.\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	assert.Equal(t, "", l.Last())
	l.Log("hello")
	require.Len(t, l.Lines(), 1)
	assert.True(t, strings.HasSuffix(l.Lines()[0], "] hello"))
}

func TestLinesIsACopy(t *testing.T) {
	l := New("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestConcurrentLog(t *testing.T) {
	l := New("")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Log("x")
			}
		}()
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 400)
}
