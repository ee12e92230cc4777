package discovery

import (
	"fmt"
	"net"
	"strings"

	"dourado/internal/utils"
)

// Request is the broadcast datagram clients send to find a server.
const Request = "DOURADO_DISCOVERY"

// Responder answers discovery broadcasts with the HTTP port to connect
// to. The engine itself is indifferent to how a seat found the server.
type Responder struct {
	conn     *net.UDPConn
	httpPort string
}

func NewResponder(udpPort int, httpPort string) (*Responder, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: udpPort})
	if err != nil {
		return nil, err
	}
	return &Responder{conn: conn, httpPort: httpPort}, nil
}

// Serve answers requests until Close is called.
func (r *Responder) Serve() {
	buf := make([]byte, 64)
	for {
		n, addr, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if strings.TrimSpace(string(buf[:n])) != Request {
			continue
		}
		reply := fmt.Sprintf("DOURADO_SERVER %s", r.httpPort)
		if _, err := r.conn.WriteToUDP([]byte(reply), addr); err != nil {
			utils.Print.Error("discovery reply failed", "err", err)
		}
	}
}

func (r *Responder) Addr() *net.UDPAddr {
	return r.conn.LocalAddr().(*net.UDPAddr)
}

func (r *Responder) Close() error {
	return r.conn.Close()
}
