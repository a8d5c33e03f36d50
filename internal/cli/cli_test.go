package cli_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/config"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endless = `States: loop never
StartState: loop
AcceptStates: never
InputAlphabet: x
StackAlphabet: x
loop - - > x loop
`

func runOpts(path, input string, stdout, stderr io.Writer) cli.RunOptions {
	return cli.RunOptions{Path: path, Input: input, Stdout: stdout, Stderr: stderr}
}

func TestRun_PrintsVerdict(t *testing.T) {
	path := testutils.WriteFile(t, "equal-counts.pda", testutils.EqualCounts)

	for _, in := range testutils.EqualCountsAccepted {
		var out bytes.Buffer
		require.NoError(t, cli.Run(runOpts(path, in, &out, io.Discard)))
		assert.Equal(t, "true\n", out.String(), "input %q", in)
	}
	for _, in := range testutils.EqualCountsRejected {
		var out bytes.Buffer
		require.NoError(t, cli.Run(runOpts(path, in, &out, io.Discard)))
		assert.Equal(t, "false\n", out.String(), "input %q", in)
	}
}

func TestRun_ShowAcceptPath(t *testing.T) {
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)

	var out bytes.Buffer
	opts := runOpts(path, "01", &out, io.Discard)
	opts.ShowAcceptPath = true
	require.NoError(t, cli.Run(opts))

	want := `state=q1 stack='' input='01'
state=q2 stack='$' input='01'
state=q2 stack='$0' input='1'
state=q3 stack='$' input=''
state=q4 stack='' input=''
true
`
	assert.Equal(t, want, out.String())
}

func TestRun_ShowAll(t *testing.T) {
	path := testutils.WriteFile(t, "equal-counts.pda", testutils.EqualCounts)

	var out bytes.Buffer
	opts := runOpts(path, "ab", &out, io.Discard)
	opts.ShowAll = true
	require.NoError(t, cli.Run(opts))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, "state=q2 stack='$' input='ab' - splits into 3 branches [A, B, C]", lines[1])
	assert.Equal(t, "true", lines[len(lines)-1])
}

func TestRun_GivesUp(t *testing.T) {
	path := testutils.WriteFile(t, "endless.pda", endless)

	var out bytes.Buffer
	opts := runOpts(path, "", &out, io.Discard)
	opts.StepLimit = 50
	err := cli.Run(opts)

	require.Error(t, err)
	assert.Equal(t, "Gave up after 50 steps without accepting", err.Error())
	assert.Equal(t, cli.ExitGaveUp, cli.ExitCode(err))
	assert.ErrorIs(t, err, domain.ErrStepBudgetExceeded)
	assert.Empty(t, out.String())
}

func TestRun_ExplicitZeroLimitGivesUpImmediately(t *testing.T) {
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)

	var out bytes.Buffer
	opts := runOpts(path, "", &out, io.Discard)
	opts.ShowAll = true
	opts.HasStepLimit = true
	err := cli.Run(opts)

	require.Error(t, err)
	assert.Equal(t, "Gave up after 0 steps without accepting", err.Error())
	assert.Equal(t, cli.ExitGaveUp, cli.ExitCode(err))
	assert.Empty(t, out.String())

	out.Reset()
	opts.HasStepLimit = false
	require.NoError(t, cli.Run(opts), "an unset limit never gives up")
	assert.True(t, strings.HasSuffix(out.String(), "true\n"))
}

func TestRun_DebugLogsToStderr(t *testing.T) {
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)

	var out, errOut bytes.Buffer
	opts := runOpts(path, "0011", &out, &errOut)
	opts.Debug = true
	require.NoError(t, cli.Run(opts))

	assert.Equal(t, "true\n", out.String())
	assert.Contains(t, errOut.String(), "level=DEBUG")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{
			name:    "Missing File",
			path:    filepath.Join(dir, "absent.pda"),
			wantMsg: "File not found: " + filepath.Join(dir, "absent.pda"),
		},
		{
			name:    "Bad Header",
			path:    testutils.WriteFile(t, "bad.pda", "Start: q1\n"),
			wantMsg: "Invalid format: line 1: expected States next, but found Start:",
		},
		{
			name:    "Unknown Extension",
			path:    testutils.WriteFile(t, "machine.xml", "<pda/>"),
			wantMsg: "Invalid format: unsupported definition format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.Run(runOpts(tt.path, "", io.Discard, io.Discard))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitGaveUp, cli.ExitCode(cli.GaveUpError(&domain.StepBudgetExceededError{Limit: 3})))
}

func TestGraph(t *testing.T) {
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)

	t.Run("Mermaid", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, cli.Graph(cli.GraphOptions{Path: path, Stdout: &out, Stderr: io.Discard}))
		assert.True(t, strings.HasPrefix(out.String(), "stateDiagram-v2\n"))
		assert.NotContains(t, out.String(), "class ")
	})

	t.Run("Dot With Overlay", func(t *testing.T) {
		var out bytes.Buffer
		err := cli.Graph(cli.GraphOptions{
			Path: path, Format: "dot", Input: "01", HasInput: true,
			Stdout: &out, Stderr: io.Discard,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), `digraph "zeroes" {`))
		assert.Contains(t, out.String(), "penwidth=3")
	})

	t.Run("Zero Limit With Input", func(t *testing.T) {
		var out bytes.Buffer
		err := cli.Graph(cli.GraphOptions{
			Path: path, Input: "01", HasInput: true, HasStepLimit: true,
			Stdout: &out, Stderr: io.Discard,
		})
		assert.Equal(t, cli.ExitGaveUp, cli.ExitCode(err))
		assert.Empty(t, out.String())
	})

	t.Run("Rejected Input", func(t *testing.T) {
		var out, errOut bytes.Buffer
		err := cli.Graph(cli.GraphOptions{
			Path: path, Input: "001", HasInput: true,
			Stdout: &out, Stderr: &errOut,
		})
		require.NoError(t, err)
		assert.Contains(t, errOut.String(), "rejected")
		assert.NotContains(t, out.String(), "class ")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		err := cli.Graph(cli.GraphOptions{Path: path, Format: "svg", Stdout: io.Discard, Stderr: io.Discard})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "svg")
	})
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)
	require.NoError(t, cli.Validate(path, &out))
	assert.Equal(t, "Definition is valid! ✅ (4 states, 5 transitions)\n", out.String())

	out.Reset()
	require.NoError(t, cli.Validate(testutils.WriteFile(t, "endless.pda", endless), &out))
	assert.Contains(t, out.String(), "warning: never: accept state unreachable from start state loop")
}

func TestDescribe_Plain(t *testing.T) {
	var out bytes.Buffer
	path := testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes)
	require.NoError(t, cli.Describe(path, &out, false))

	assert.Contains(t, out.String(), "zeroes")
	assert.Contains(t, out.String(), "Transitions (5)")
	assert.NotContains(t, out.String(), "\x1b[")
}

func loadMachine(t *testing.T) *pushdown.Machine {
	t.Helper()
	m, err := cli.LoadMachine(testutils.WriteFile(t, "zeroes.pda", testutils.ZeroesThenOnes), cli.NewLogger(io.Discard, false))
	require.NoError(t, err)
	return m
}

func TestNewStack_MemoryWithMetrics(t *testing.T) {
	stack, err := cli.NewStack(context.Background(), loadMachine(t), config.Default(), cli.NewLogger(io.Discard, false))
	require.NoError(t, err)
	defer stack.Close()

	srv := httptest.NewServer(stack.Handler(cli.NewLogger(io.Discard, false)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/accepts", "application/json", strings.NewReader(`{"input":"0011"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pushdown_runs_total{outcome="accepted"} 1`)
}

func TestNewStack_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Metrics = false
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.TTL = time.Minute

	stack, err := cli.NewStack(context.Background(), loadMachine(t), cfg, cli.NewLogger(io.Discard, false))
	require.NoError(t, err)
	defer stack.Close()
	assert.Nil(t, stack.Registry)

	v, err := stack.Runner.Evaluate(context.Background(), runner.Request{Input: "01"})
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Len(t, mr.Keys(), 1)
	assert.True(t, strings.HasPrefix(mr.Keys()[0], cfg.Redis.Prefix))

	again, err := stack.Runner.Evaluate(context.Background(), runner.Request{Input: "01"})
	require.NoError(t, err)
	assert.True(t, again.Cached)
}

func TestNewStack_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = addr

	_, err := cli.NewStack(context.Background(), loadMachine(t), cfg, cli.NewLogger(io.Discard, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach redis")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"

	m := loadMachine(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		done <- cli.Serve(ctx, m, cfg, cli.NewLogger(io.Discard, false), &out)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), "Starting pushdown server on 127.0.0.1:0")
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := cli.ServeMCP(context.Background(), loadMachine(t), config.Default(), "carrier-pigeon", 0, cli.NewLogger(io.Discard, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown transport")
}

func TestNewStack_EncryptedRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Metrics = false
	cfg.Redis.Addr = mr.Addr()
	cfg.Encryption.Key = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32))

	stack, err := cli.NewStack(context.Background(), loadMachine(t), cfg, cli.NewLogger(io.Discard, false))
	require.NoError(t, err)
	defer stack.Close()

	_, err = stack.Runner.Evaluate(context.Background(), runner.Request{Input: "000111"})
	require.NoError(t, err)

	require.Len(t, mr.Keys(), 1)
	raw, err := mr.Get(mr.Keys()[0])
	require.NoError(t, err)
	assert.NotContains(t, raw, "000111")
	assert.NotContains(t, raw, `"accepted":true`)

	again, err := stack.Runner.Evaluate(context.Background(), runner.Request{Input: "000111"})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.True(t, again.Accepted)
}
