package cli

import (
	"net"

	"DigitPad/internal/discovery"

	"github.com/spf13/cobra"
)

type advertiseOptions struct {
	port     int
	path     string
	service  string
	instance string
	host     string
	ips      []string
}

func newAdvertiseCmd() *cobra.Command {
	var opts advertiseOptions

	cmd := &cobra.Command{
		Use:   "advertise",
		Short: "Announce a running predictor over mDNS until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvertise(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 5000, "port the predictor listens on")
	cmd.Flags().StringVar(&opts.path, "path", discovery.DefaultPath, "prediction path on the predictor")
	cmd.Flags().StringVar(&opts.service, "service", discovery.DefaultService, "mDNS service type")
	cmd.Flags().StringVar(&opts.instance, "instance", "", "instance name (default: hostname)")
	cmd.Flags().StringVar(&opts.host, "host", "", "fully qualified host name with trailing dot (default: hostname)")
	cmd.Flags().StringSliceVar(&opts.ips, "ip", nil, "address to announce (repeatable; default: resolve host)")
	return cmd
}

func (o advertiseOptions) announcement() (discovery.Announcement, error) {
	a := discovery.Announcement{
		Instance: o.instance,
		Service:  o.service,
		Host:     o.host,
		Port:     o.port,
		Path:     o.path,
	}
	for _, s := range o.ips {
		ip := net.ParseIP(s)
		if ip == nil {
			return discovery.Announcement{}, &net.ParseError{Type: "IP address", Text: s}
		}
		a.IPs = append(a.IPs, ip)
	}
	return a, nil
}

func runAdvertise(cmd *cobra.Command, opts advertiseOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	a, err := opts.announcement()
	if err != nil {
		return err
	}
	if len(a.IPs) == 0 {
		ip, err := discovery.OutgoingIP()
		if err != nil {
			logger.Warn("no address to announce, relying on host lookup", "err", err)
		} else {
			a.IPs = []net.IP{ip}
		}
	}
	svc, err := discovery.NewService(a)
	if err != nil {
		return err
	}
	server, err := discovery.Advertise(svc)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Shutdown(); err != nil {
			logger.Warn("mDNS shutdown", "err", err)
		}
	}()

	logger.Info("advertising predictor", "service", svc.Service, "instance", svc.Instance, "port", svc.Port, "path", opts.path)
	<-ctx.Done()
	logger.Info("stopped advertising")
	return nil
}
