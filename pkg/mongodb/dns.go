package mongodb

import (
	"context"
	"net"
	"sync/atomic"
	"time"
)

const dnsDialTimeout = 5 * time.Second

// UseDNSServers points net.DefaultResolver at the given servers. It exists for
// networks that block the SRV lookups behind mongodb+srv:// URIs. Servers
// without a port are dialled on 53.
func UseDNSServers(servers []string) {
	if len(servers) == 0 {
		return
	}
	net.DefaultResolver = newResolver(servers)
}

func newResolver(servers []string) *net.Resolver {
	addrs := make([]string, 0, len(servers))
	for _, s := range servers {
		addrs = append(addrs, dnsAddr(s))
	}

	var next atomic.Uint32
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			addr := addrs[int(next.Add(1)-1)%len(addrs)]
			d := net.Dialer{Timeout: dnsDialTimeout}
			return d.DialContext(ctx, network, addr)
		},
	}
}

func dnsAddr(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}
