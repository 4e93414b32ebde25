package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// symbol mirrors one entry of a symbol table as emitted by dumping tools
type symbol struct {
	Vaddr   uint32   `json:"vaddr"`
	Name    string   `json:"name"`
	Size    uint32   `json:"size"`
	Global  bool     `json:"global"`
	Section string   `json:"section"`
	Tags    []string `json:"tags"`
}

// generateSymbols creates a deterministic symbol table with n entries
func generateSymbols(n int) []symbol {
	symbols := make([]symbol, n)
	for i := range symbols {
		symbols[i] = symbol{
			Vaddr:   0x400000 + uint32(i)*0x10,
			Name:    fmt.Sprintf("sym_%d", i),
			Size:    uint32(i % 256),
			Global:  i%3 == 0,
			Section: ".text",
			Tags:    []string{"func"},
		}
	}
	return symbols
}

func writeSymbols(t *testing.T, dir string, symbols []symbol) string {
	t.Helper()
	data, err := json.Marshal(symbols)
	require.NoError(t, err)
	path := filepath.Join(dir, "symbols.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func runSymdump(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../.."}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_LargeSymbolTable runs the binary on a compact document produced by encoding/json
func TestEndToEnd_LargeSymbolTable(t *testing.T) {
	tempDir := t.TempDir()
	symbols := generateSymbols(2000)
	path := writeSymbols(t, tempDir, symbols)

	stdout, stderr, err := runSymdump(t, path)
	require.NoError(t, err, "symdump failed: %s", stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, len(symbols))
	assert.Equal(t, "0x400000 sym_0", lines[0])
	assert.Equal(t, "0x400010 sym_1", lines[1])
	assert.Equal(t, fmt.Sprintf("%#x sym_1999", 0x400000+1999*0x10), lines[1999])
}

// TestEndToEnd_FilterAndHeader combines an expression filter with a header
func TestEndToEnd_FilterAndHeader(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSymbols(t, tempDir, generateSymbols(30))

	stdout, stderr, err := runSymdump(t, path, "-H", "--color=never", "-f", `global && size >= 20 && section == ".text"`)
	require.NoError(t, err, "symdump failed: %s", stderr)

	// Global entries are multiples of three; size equals the index below 256.
	want := "VADDR NAME\n" +
		"0x400150 sym_21\n" +
		"0x400180 sym_24\n" +
		"0x4001b0 sym_27\n"
	assert.Equal(t, want, stdout)
}

// TestEndToEnd_ConfigDiscovery picks up a config file from the document's working tree
func TestEndToEnd_ConfigDiscovery(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSymbols(t, tempDir, generateSymbols(2))
	configPath := filepath.Join(tempDir, "symdump.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("report:\n  uppercase_hex: true\n  header: true\n  color: never\n"), 0644))

	stdout, stderr, err := runSymdump(t, "--config", configPath, path)
	require.NoError(t, err, "symdump failed: %s", stderr)
	assert.Equal(t, "VADDR NAME\n0x400000 sym_0\n0x400010 sym_1\n", stdout)
}

// TestEndToEnd_MissingField reports which entry lacks the address field
func TestEndToEnd_MissingField(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"vaddr":1,"name":"a"},{"name":"b"}]`), 0644))

	_, stderr, err := runSymdump(t, path)
	assert.Error(t, err)
	assert.Contains(t, stderr, "Report error: entry 1")
	assert.Contains(t, stderr, `field with key "vaddr" not found`)
}

// TestEndToEnd_StrictMode rejects trailing data only when asked
func TestEndToEnd_StrictMode(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "trailing.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"vaddr":1,"name":"a"}] garbage`), 0644))

	stdout, stderr, err := runSymdump(t, path)
	require.NoError(t, err, "symdump failed: %s", stderr)
	assert.Equal(t, "0x1 a\n", stdout)

	_, stderr, err = runSymdump(t, "--strict", path)
	assert.Error(t, err)
	assert.Contains(t, stderr, "trailing data after root value")
}

// TestEndToEnd_NonExistentFile checks the message for a bad path
func TestEndToEnd_NonExistentFile(t *testing.T) {
	_, stderr, err := runSymdump(t, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, stderr, "Input error")
	assert.Contains(t, stderr, "not found")
}
