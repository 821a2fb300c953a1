package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// testKey is a throwaway secp256k1 key; its address is testAccount.
const (
	testKey     = "0x289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testAccount = "0x970E8128AB834E8EAC17Ab8E3812F010678CF791"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	cleanup := func() { _ = ln.Close() }
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	binPath := filepath.Join(t.TempDir(), "bookslib")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bookslib")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

// startServer runs serve against an unreachable node; binding needs no node
// because the chain id is given.
func startServer(t *testing.T, bin, keyFile string, port int) *serverProc {
	t.Helper()
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin,
		"--key-file", keyFile,
		"--rpc-url", "http://127.0.0.1:1",
		"--chain-id", "1337",
		"serve", "--addr", fmt.Sprintf("127.0.0.1:%d", port),
	)
	cmd.Env = append(os.Environ(), "BOOKSLIB_RATE_LIMIT_RPS=1000", "BOOKSLIB_RATE_LIMIT_BURST=1000")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return &serverProc{cmd: cmd, base: base}
}

func do(t *testing.T, method, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

type state struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account"`
	Registry  string `json:"registry"`
	Forms     struct {
		AddItem struct {
			Author string `json:"author"`
			Copies string `json:"copies"`
		} `json:"addItem"`
	} `json:"forms"`
	Error *struct {
		Message string `json:"message"`
		Kind    string `json:"kind"`
	} `json:"error"`
}

func getState(t *testing.T, base string) state {
	t.Helper()
	resp, body := do(t, http.MethodGet, base+"/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/state %d %s", resp.StatusCode, string(body))
	}
	var st state
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/state json: %v body=%s", err, string(body))
	}
	return st
}

func waitReady(t *testing.T, base string, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, _ := do(t, http.MethodGet, base+"/readyz", nil)
		if resp.StatusCode == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("/readyz did not reach %d in time; last=%d", want, resp.StatusCode)
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	keyFile := filepath.Join(t.TempDir(), "key")
	// Reserve a free port, then release listener before starting the server
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, keyFile, port)

	// no identity yet
	waitReady(t, sp.base, http.StatusServiceUnavailable)
	st := getState(t, sp.base)
	if st.Connected || st.Registry == "" || st.Forms.AddItem.Copies != "0" {
		t.Fatalf("unexpected initial state: %+v", st)
	}

	// edits are accepted while disconnected
	resp, body := do(t, http.MethodPut, sp.base+"/forms/add/fields/author", []byte(`{"value":"Le Guin"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT field %d %s", resp.StatusCode, string(body))
	}
	if got := getState(t, sp.base).Forms.AddItem.Author; got != "Le Guin" {
		t.Fatalf("author=%q", got)
	}

	// triggers are refused
	resp, body = do(t, http.MethodPost, sp.base+"/ops/add", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("POST /ops/add while disconnected: %d %s", resp.StatusCode, string(body))
	}

	// an identity appears
	if err := os.WriteFile(keyFile, []byte(testKey+"\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	waitReady(t, sp.base, http.StatusOK)
	if st := getState(t, sp.base); !st.Connected || st.Account != testAccount {
		t.Fatalf("expected bound to %s: %+v", testAccount, st)
	}

	// the node is unreachable, so a list fails and fills the banner
	resp, body = do(t, http.MethodPost, sp.base+"/ops/list?wait=1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /ops/list %d %s", resp.StatusCode, string(body))
	}
	var op struct {
		State  string `json:"state"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &op); err != nil || op.State != "failed" || op.Reason == "" {
		t.Fatalf("expected failed list with a reason: %s", string(body))
	}
	if st := getState(t, sp.base); st.Error == nil || st.Error.Message != op.Reason {
		t.Fatalf("banner should carry the failure: %+v", st.Error)
	}
	resp, _ = do(t, http.MethodDelete, sp.base+"/error", nil)
	if resp.StatusCode != http.StatusNoContent || getState(t, sp.base).Error != nil {
		t.Fatalf("dismiss failed: %d", resp.StatusCode)
	}

	// removing the key retracts the handle
	if err := os.Remove(keyFile); err != nil {
		t.Fatalf("remove key: %v", err)
	}
	waitReady(t, sp.base, http.StatusServiceUnavailable)
}

func TestBlackbox_UnknownRoutes_404(t *testing.T) {
	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, filepath.Join(t.TempDir(), "key"), port)

	resp, body := do(t, http.MethodPost, sp.base+"/ops/burn", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body))
	}
	resp, body = do(t, http.MethodPut, sp.base+"/forms/add/fields/isbn", []byte(`{"value":"1"}`))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body))
	}
}
