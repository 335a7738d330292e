package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princess-rosella/spu-md5/src/internal/errors"
	"github.com/princess-rosella/spu-md5/src/internal/log"
)

func init() {
	log.DisableLogs()
}

func runCommand(t *testing.T, cmd Runner, ctx *AppContext, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ctx.Stdout = &out
	if err := cmd.Init(args, ctx); err != nil {
		return out.String(), err
	}
	err := cmd.Run()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestSumCommand_Files(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("abc"))
	b := writeFile(t, "b.txt", nil)

	out, err := runCommand(t, CreateSumCommand(), &AppContext{}, a, b)
	require.NoError(t, err)

	assert.Equal(t,
		"900150983cd24fb0d6963f7d28e17f72  "+a+"\n"+
			"d41d8cd98f00b204e9800998ecf8427e  "+b+"\n",
		out)
}

func TestSumCommand_StdinWithFormat(t *testing.T) {
	ctx := &AppContext{Stdin: strings.NewReader("ABCD")}

	out, err := runCommand(t, CreateSumCommand(), ctx, "-format", "{{name}} {{size}} {{hash}}", "-chunk", "1")
	require.NoError(t, err)
	assert.Equal(t, "- 4 cb08ca4a7bb5f9683c19133a84872ca7\n", out)
}

func TestSumCommand_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("A"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := writeFile(t, "a.gz", buf.Bytes())

	out, err := runCommand(t, CreateSumCommand(), &AppContext{}, "-z", "gzip", "-format", "{{hash}}", path)
	require.NoError(t, err)
	assert.Equal(t, "7fc56270e7a70fa81a5935b72eacbe29\n", out)
}

func TestSumCommand_MissingFileContinues(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("abc"))
	missing := filepath.Join(t.TempDir(), "missing.txt")

	out, err := runCommand(t, CreateSumCommand(), &AppContext{}, "-format", "{{hash}}", missing, a)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIO, errors.GetCode(err))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72\n", out)
}

func TestSumCommand_BadFlags(t *testing.T) {
	_, err := runCommand(t, CreateSumCommand(), &AppContext{}, "-format", "{{sha1}}")
	assert.Error(t, err)

	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-chunk", "-1")
	assert.Error(t, err)
}

func TestSumCommand_ConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "spu-md5.conf", []byte(`
[general]
output_format = "MD5 ({{name}}) = {{hash}}"
`))
	a := writeFile(t, "a.txt", []byte("abc"))

	out, err := runCommand(t, CreateSumCommand(), &AppContext{ConfigPath: cfgPath}, a)
	require.NoError(t, err)
	assert.Equal(t, "MD5 ("+a+") = 900150983cd24fb0d6963f7d28e17f72\n", out)
}

func TestSumCommand_InvalidConfig(t *testing.T) {
	cfgPath := writeFile(t, "spu-md5.conf", []byte("[general]\nchunk_size = -1\n"))

	_, err := runCommand(t, CreateSumCommand(), &AppContext{ConfigPath: cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "general.chunk_size")
}

func TestStringCommand(t *testing.T) {
	out, err := runCommand(t, CreateStringCommand(), &AppContext{}, "-format", "{{hash}} {{size}}", "", "A")
	require.NoError(t, err)
	assert.Equal(t,
		"d41d8cd98f00b204e9800998ecf8427e 0\n"+
			"7fc56270e7a70fa81a5935b72eacbe29 1\n",
		out)
}

func TestStringCommand_Latin1(t *testing.T) {
	out, err := runCommand(t, CreateStringCommand(), &AppContext{}, "-latin1", "-format", "{{size}}", "é")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = runCommand(t, CreateStringCommand(), &AppContext{}, "-latin1", "€")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUsage, errors.GetCode(err))
}

func TestStringCommand_Set(t *testing.T) {
	out, err := runCommand(t, CreateStringCommand(), &AppContext{}, "-set", "-format", "{{name}} {{hash}}", "a", "b", "a")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	// md5("a\nb\n")
	assert.Equal(t, "(set) dd8c6a395b5dd36c56d23275028f526c", lines[3])
}

func TestStringCommand_NoArgs(t *testing.T) {
	_, err := runCommand(t, CreateStringCommand(), &AppContext{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUsage, errors.GetCode(err))
}

func TestSelfCheckCommand(t *testing.T) {
	out, err := runCommand(t, CreateSelfCheckCommand(), &AppContext{})
	require.NoError(t, err)

	assert.Contains(t, out, "[general]")
	assert.Contains(t, out, "ok   alphabet x4")
	assert.NotContains(t, out, "FAIL")
}

func TestSelfCheckCommand_Mismatch(t *testing.T) {
	cfgPath := writeFile(t, "spu-md5.conf", []byte(`
[[vector]]
name = "abc"
input = "abc"
expected = "00000000000000000000000000000000"
`))

	out, err := runCommand(t, CreateSelfCheckCommand(), &AppContext{ConfigPath: cfgPath}, "-quiet")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMismatch, errors.GetCode(err))
	assert.Contains(t, out, "FAIL abc")
	assert.NotContains(t, out, "ok ")
}

func TestServeCommand_Signal(t *testing.T) {
	cmd := CreateServeCommand()
	require.NoError(t, cmd.Init([]string{"-bind", "127.0.0.1:0"}, &AppContext{}))

	cmd.signals = make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- cmd.Run() }()

	time.Sleep(100 * time.Millisecond)
	cmd.signals <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after signal")
	}
}

func TestServeCommand_GivesUp(t *testing.T) {
	cmd := CreateServeCommand()
	require.NoError(t, cmd.Init([]string{"-bind", "127.0.0.1:not-a-port", "-max-restarts", "1"}, &AppContext{}))
	cmd.signals = make(chan os.Signal, 1)

	err := cmd.Run()
	assert.Error(t, err)
}

func TestSumCommand_Sidecar(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("abc"))

	_, err := runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "write", a)
	require.NoError(t, err)

	recorded, err := os.ReadFile(a + ".md5")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72\n", string(recorded))

	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "check", a)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(a, []byte("abd"), 0644))
	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "check", a)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMismatch, errors.GetCode(err))
}

func TestSumCommand_SidecarCheckUnreadableInput(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("abc"))
	_, err := runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "write", a)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "check", missing, a)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIO, errors.GetCode(err))

	// A real mismatch takes precedence over read failures.
	require.NoError(t, os.WriteFile(a, []byte("abd"), 0644))
	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "check", missing, a)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMismatch, errors.GetCode(err))
}

func TestSumCommand_SidecarNeedsFiles(t *testing.T) {
	_, err := runCommand(t, CreateSumCommand(), &AppContext{Stdin: strings.NewReader("")}, "-sidecar", "write")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUsage, errors.GetCode(err))

	_, err = runCommand(t, CreateSumCommand(), &AppContext{}, "-sidecar", "maybe", "x")
	require.Error(t, err)
}
