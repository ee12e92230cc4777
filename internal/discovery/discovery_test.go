package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponderAnswersRequest(t *testing.T) {
	resp, err := NewResponder(0, ":8080") // port 0: pick a free one
	assert.NoError(t, err)
	defer resp.Close()
	go resp.Serve()

	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{
		IP:   net.IPv4(127, 0, 0, 1),
		Port: resp.Addr().Port,
	})
	assert.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(Request))
	assert.NoError(t, err)

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "DOURADO_SERVER :8080", string(buf[:n]))
}

func TestResponderIgnoresJunk(t *testing.T) {
	resp, err := NewResponder(0, ":8080")
	assert.NoError(t, err)
	defer resp.Close()
	go resp.Serve()

	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{
		IP:   net.IPv4(127, 0, 0, 1),
		Port: resp.Addr().Port,
	})
	assert.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("not a discovery request"))
	assert.NoError(t, err)

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	buf := make([]byte, 64)
	_, err = conn.Read(buf)
	assert.Error(t, err, "junk must get no reply")
}
