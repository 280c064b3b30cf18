package discovery

import (
	"net"
	"testing"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		entry *mdns.ServiceEntry
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"no address", &mdns.ServiceEntry{Port: 5000}, "", false},
		{"no port", &mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2)}, "", false},
		{
			"default path",
			&mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2), Port: 5000},
			"http://10.0.0.2:5000/api/predict-digit", true,
		},
		{
			"path from txt",
			&mdns.ServiceEntry{
				AddrV4:     net.IPv4(192, 168, 1, 20),
				Port:       8080,
				InfoFields: []string{"DigitPad predictor", "path=v2/digits"},
			},
			"http://192.168.1.20:8080/v2/digits", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Endpoint(tt.entry)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewService(t *testing.T) {
	svc, err := NewService(Announcement{
		Instance: "lab",
		Host:     "lab.local.",
		Port:     5000,
		IPs:      []net.IP{net.IPv4(127, 0, 0, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultService, svc.Service)
	assert.Equal(t, 5000, svc.Port)
	assert.Contains(t, svc.TXT, "path=/api/predict-digit")
}

func TestNewServiceRejectsMissingPort(t *testing.T) {
	_, err := NewService(Announcement{
		Instance: "lab",
		Host:     "lab.local.",
		IPs:      []net.IP{net.IPv4(127, 0, 0, 1)},
	})
	assert.Error(t, err)
}

func TestInterfaceIPIsIPv4(t *testing.T) {
	ip, err := interfaceIP()
	if err != nil {
		t.Skipf("no usable interface: %v", err)
	}
	assert.NotNil(t, ip.To4())
	assert.False(t, ip.IsLoopback())
}
