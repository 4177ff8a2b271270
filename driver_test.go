package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/libklein/nand2tetris/jackcompiler/internal/compiler"
	"github.com/libklein/nand2tetris/jackcompiler/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainSource = `class Main {
    function void main() {
        do Output.printInt(1 + 2);
        return;
    }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, "Main", getClassName("src/Main.jack"))
	assert.Equal(t, "src/Main.vm", getOutputPath("src/Main.jack", ""))
	assert.Equal(t, filepath.Join("build", "Main.vm"), getOutputPath("src/Main.jack", "build"))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.jack", mainSource)
	writeFile(t, dir, "Square.jack", mainSource)
	writeFile(t, dir, "notes.txt", "not jack")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jack"), 0755))

	files, err := collectFiles([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "Main.jack"),
		filepath.Join(dir, "Square.jack"),
	}, files)

	single := filepath.Join(dir, "Main.jack")
	files, err = collectFiles([]string{single})
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files)

	_, err = collectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)

	empty := t.TempDir()
	_, err = collectFiles([]string{empty})
	assert.Error(t, err)
}

func TestCompileAll(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "Main.jack", mainSource)
	bad := writeFile(t, dir, "Broken.jack", "class Broken { function void f() { let x = 1; return; } }")
	alsoBad := writeFile(t, dir, "Dup.jack", "class Dup { field int a; static char a; }")

	err := compileAll([]string{good, bad, alsoBad}, Config{Jobs: 2})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, symbols.ErrUndeclaredName)
	assert.ErrorIs(t, err, symbols.ErrDuplicateName)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), alsoBad)

	code, err := os.ReadFile(filepath.Join(dir, "Main.vm"))
	require.NoError(t, err)
	assert.Equal(t, "function Main.main 0\n"+
		"push constant 1\n"+
		"push constant 2\n"+
		"add\n"+
		"call Output.printInt 1\n"+
		"pop temp 0\n"+
		"push constant 0\n"+
		"return\n", string(code))

	assert.NoFileExists(t, filepath.Join(dir, "Broken.vm"))
	assert.NoFileExists(t, filepath.Join(dir, "Dup.vm"))
}

func TestCompileAllOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "Main.jack", mainSource)
	out := filepath.Join(dir, "build")

	require.NoError(t, compileAll([]string{src}, Config{Jobs: 1, Out: out}))
	assert.FileExists(t, filepath.Join(out, "Main.vm"))
	assert.NoFileExists(t, filepath.Join(dir, "Main.vm"))
}

func TestCompileFileTokenizerError(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "Main.jack", "class Main { /* unterminated")
	_, err := processFile(src, "")
	assert.Error(t, err)

	src = writeFile(t, dir, "Short.jack", "class Short {")
	_, err = processFile(src, "")
	assert.ErrorIs(t, err, compiler.ErrUnexpectedEndOfInput)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, defaultConfigFile), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(filepath.Join(dir, defaultConfigFile), true)
	assert.Error(t, err)

	path := writeFile(t, dir, "jackc.yaml", "jobs: 3\nout: build\nverbose: true\n")
	cfg, err = loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{Jobs: 3, Out: "build", Verbose: true}, cfg)

	path = writeFile(t, dir, "zero.yaml", "jobs: 0\n")
	_, err = loadConfig(path, true)
	assert.Error(t, err)
}

func TestConfigureFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jackc.yaml", "jobs: 3\nout: build\n")

	cmd := rootCmd
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "-j", "5"}))
	cfg, err := configure(cmd)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Jobs)
	assert.Equal(t, "build", cfg.Out)
	assert.False(t, cfg.Verbose)
}
