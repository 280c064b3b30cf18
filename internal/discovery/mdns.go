// Package discovery finds a digit predictor on the local network over
// mDNS, and can announce an existing one.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	DefaultService = "_digitpredict._tcp"
	DefaultPath    = "/api/predict-digit"
	pathKey        = "path="
)

var ErrNotFound = errors.New("no predictor found on the local network")

// Announcement describes a running predictor to announce.
type Announcement struct {
	Instance string // defaults to the OS hostname
	Service  string // defaults to DefaultService
	Host     string // fully qualified, trailing dot; defaults to the OS hostname
	Port     int
	Path     string // defaults to DefaultPath
	IPs      []net.IP
}

// NewService builds the mDNS record for a.
func NewService(a Announcement) (*mdns.MDNSService, error) {
	if a.Instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		a.Instance = host
	}
	if a.Service == "" {
		a.Service = DefaultService
	}
	if a.Path == "" {
		a.Path = DefaultPath
	}
	info := []string{"DigitPad predictor", pathKey + a.Path}
	svc, err := mdns.NewMDNSService(a.Instance, a.Service, "", a.Host, a.Port, a.IPs, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return svc, nil
}

// Advertise starts answering mDNS queries for svc. Shut the server down
// to stop.
func Advertise(svc *mdns.MDNSService) (*mdns.Server, error) {
	server, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse queries for service and returns the prediction URL of the first
// answer that carries an IPv4 address and port.
func Browse(ctx context.Context, service string, timeout time.Duration) (string, error) {
	if service == "" {
		service = DefaultService
	}
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	drained := make(chan struct{})

	go func() {
		defer close(drained)
		for e := range entries {
			endpoint, ok := Endpoint(e)
			if !ok {
				continue
			}
			select {
			case found <- endpoint:
			default:
			}
		}
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	queryErr := make(chan error, 1)
	go func() {
		queryErr <- mdns.Query(params)
		close(entries)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case endpoint := <-found:
		return endpoint, nil
	case <-drained:
		select {
		case endpoint := <-found:
			return endpoint, nil
		default:
		}
		if err := <-queryErr; err != nil {
			return "", fmt.Errorf("mdns query: %w", err)
		}
		return "", ErrNotFound
	}
}

// Endpoint turns a service entry into a prediction URL.
func Endpoint(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	path := DefaultPath
	for _, field := range e.InfoFields {
		if p, ok := strings.CutPrefix(field, pathKey); ok && p != "" {
			path = p
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(e.AddrV4.String(), strconv.Itoa(e.Port)),
		Path:   path,
	}
	return u.String(), true
}
