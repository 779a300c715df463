package statsd

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{prefix: "console", name: "api.request", want: "console.api.request"},
		{prefix: "", name: " route/company ", want: "route_company"},
		{prefix: "console", name: "foo..bar", want: "console.foo.bar"},
		{prefix: "console", name: "", want: ""},
		{prefix: "console", name: "/company/{id}", want: "console._company_id"},
	}

	for _, tt := range tests {
		if got := metricName(tt.prefix, tt.name); got != tt.want {
			t.Fatalf("metricName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestRenderTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{"env": "prod", " service ": " console "}
	local := map[string]string{"status": " 2xx ", "": "ignored", "env": "stage"}

	got := renderTags(global, local)
	want := "|#env:stage,service:console,status:2xx"
	if got != want {
		t.Fatalf("renderTags mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := renderTags(nil, nil); got != "" {
		t.Fatalf("renderTags(nil, nil) = %q, want empty string", got)
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), Config{Enabled: false, Address: "127.0.0.1:8125"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Enabled() {
		t.Fatal("expected disabled client")
	}
	c.Count("api.request", 1, nil)
	c.Timing("api.request.duration", time.Millisecond, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var nilClient *Client
	nilClient.Count("ignored", 1, nil)
	if nilClient.Enabled() {
		t.Fatal("nil client must report disabled")
	}
}

func TestClientWritesLines(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	c, err := NewClient(context.Background(), Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     "console.",
		GlobalTags: map[string]string{"env": "test"},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	c.Count("api.request", 1, map[string]string{"method": "GET"})

	buf := make([]byte, 512)
	if err := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	got := string(buf[:n])
	if !strings.HasPrefix(got, "console.api.request:1|c|#") {
		t.Fatalf("unexpected line %q", got)
	}
	if !strings.Contains(got, "env:test") || !strings.Contains(got, "method:GET") {
		t.Fatalf("expected tags in %q", got)
	}
}
