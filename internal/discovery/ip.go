package discovery

import (
	"errors"
	"net"
)

var errNoAddress = errors.New("no non-loopback IPv4 address")

// OutgoingIP returns the address this host uses to reach other machines,
// which is the one worth announcing. Dialing UDP sends no packets.
func OutgoingIP() (net.IP, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return interfaceIP()
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !addr.IP.IsLoopback() {
		return addr.IP, nil
	}
	return interfaceIP()
}

// interfaceIP serves networks without a default route.
func interfaceIP() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip := ipnet.IP.To4(); ip != nil {
				return ip, nil
			}
		}
	}
	return nil, errNoAddress
}
