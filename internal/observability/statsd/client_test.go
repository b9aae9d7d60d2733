package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUDPListener(t *testing.T) (net.PacketConn, string) {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, conn.LocalAddr().String()
}

func readDatagram(t *testing.T, conn net.PacketConn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestClientCount(t *testing.T) {
	listener, addr := newUDPListener(t)

	client, err := NewClient(Config{
		Enabled: true,
		Address: addr,
		Prefix:  "digest_api",
	})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	client.Count("digest.submit.accepted", 1, nil)
	assert.Equal(t, "digest_api.digest.submit.accepted:1|c", readDatagram(t, listener))
}

func TestClientTimingWithTags(t *testing.T) {
	listener, addr := newUDPListener(t)

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    addr,
		Prefix:     "digest_api",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	client.Timing("http.request", 250*time.Millisecond, map[string]string{"method": "POST"})
	assert.Equal(t, "digest_api.http.request:250|ms|#env:test,method:POST", readDatagram(t, listener))
}

func TestDisabledClientIsSilent(t *testing.T) {
	client, err := NewClient(Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, client.Enabled())
	// Must not panic without a connection.
	client.Count("digest.submit.accepted", 1, nil)
	client.Timing("http.request", time.Millisecond, nil)
	assert.NoError(t, client.Close())
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	client.Count("x", 1, nil)
	client.Timing("x", time.Millisecond, nil)
	assert.NoError(t, client.Close())
}
