package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/segmentio/encoding/json"
	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/debugstatsd"
	"github.com/segmentio/statsd/statsdtest"
	"github.com/segmentio/statsd/version"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetHandler(text.New(os.Stderr))

	app := &cli.App{
		Name:            "statsdcat",
		Usage:           "send and capture statsd metrics from the command line",
		Version:         version.Version,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			countCommand(),
			gaugeCommand(),
			timingCommand(),
			setCommand(),
			histogramCommand(),
			distributionCommand(),
			agentCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// sendFlags are shared by every metric-sending subcommand.
func sendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Value: statsd.DefaultAddress,
			Usage: "address of the statsd server the datagrams are sent to",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "dogstatsd",
			Usage: "wire dialect, one of dogstatsd, telegraf, graphite, plain",
		},
		&cli.StringFlag{
			Name:  "namespace",
			Usage: "prefix applied to the metric name",
		},
		&cli.StringSliceFlag{
			Name:    "tag",
			Aliases: []string{"t"},
			Usage:   "tag to set on the metric, as name:value (repeatable)",
		},
		&cli.Float64Flag{
			Name:  "rate",
			Value: 1,
			Usage: "sample rate, in (0, 1]",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log every metric before it is sent",
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "add a value to a counter (1 when omitted)",
		ArgsUsage: "name [value]",
		Flags:     sendFlags(),
		Action: func(c *cli.Context) error {
			name, err := metricName(c)
			if err != nil {
				return err
			}

			value := int64(1)
			if c.NArg() > 1 {
				if value, err = strconv.ParseInt(c.Args().Get(1), 10, 64); err != nil {
					return fmt.Errorf("bad metric value: %s", c.Args().Get(1))
				}
			}

			return send(c, func(client statsd.ClientInterface) error {
				return client.Count(name, value, tagFlags(c), c.Float64("rate"))
			})
		},
	}
}

func gaugeCommand() *cli.Command {
	return &cli.Command{
		Name:      "gauge",
		Usage:     "set a gauge, or adjust it with --delta",
		ArgsUsage: "name value",
		Flags: append(sendFlags(), &cli.BoolFlag{
			Name:  "delta",
			Usage: "adjust the gauge by value instead of setting it",
		}),
		Action: func(c *cli.Context) error {
			name, value, err := metricNameAndFloat(c)
			if err != nil {
				return err
			}

			return send(c, func(client statsd.ClientInterface) error {
				if c.Bool("delta") {
					return client.GaugeDelta(name, value, tagFlags(c), c.Float64("rate"))
				}
				return client.Gauge(name, value, tagFlags(c), c.Float64("rate"))
			})
		},
	}
}

func timingCommand() *cli.Command {
	return &cli.Command{
		Name:      "timing",
		Usage:     "record a duration, either given literally or measured around a command",
		ArgsUsage: "name (duration | command [arguments...])",
		Flags:     sendFlags(),
		Action: func(c *cli.Context) error {
			name, err := metricName(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return fmt.Errorf("missing duration or command line")
			}

			if c.NArg() == 2 {
				if d, err := time.ParseDuration(c.Args().Get(1)); err == nil {
					return send(c, func(client statsd.ClientInterface) error {
						return client.Timing(name, d, tagFlags(c), c.Float64("rate"))
					})
				}
			}

			return send(c, func(client statsd.ClientInterface) error {
				var runErr error
				if err := statsd.Timed(client, name, tagFlags(c), c.Float64("rate"), func() {
					runErr = run(c.Args().Slice()[1:])
				}); err != nil {
					return err
				}
				return runErr
			})
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "count a member as one occurrence of a unique value",
		ArgsUsage: "name member",
		Flags:     sendFlags(),
		Action: func(c *cli.Context) error {
			name, err := metricName(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return fmt.Errorf("missing set member")
			}
			member := c.Args().Get(1)

			return send(c, func(client statsd.ClientInterface) error {
				return client.Set(name, member, tagFlags(c), c.Float64("rate"))
			})
		},
	}
}

func histogramCommand() *cli.Command {
	return &cli.Command{
		Name:      "histogram",
		Usage:     "record a value in a histogram",
		ArgsUsage: "name value",
		Flags:     sendFlags(),
		Action: func(c *cli.Context) error {
			name, value, err := metricNameAndFloat(c)
			if err != nil {
				return err
			}

			return send(c, func(client statsd.ClientInterface) error {
				return client.Histogram(name, value, tagFlags(c), c.Float64("rate"))
			})
		},
	}
}

func distributionCommand() *cli.Command {
	return &cli.Command{
		Name:      "distribution",
		Usage:     "record a value in a distribution",
		ArgsUsage: "name value",
		Flags:     sendFlags(),
		Action: func(c *cli.Context) error {
			name, value, err := metricNameAndFloat(c)
			if err != nil {
				return err
			}

			return send(c, func(client statsd.ClientInterface) error {
				return client.Distribution(name, value, tagFlags(c), c.Float64("rate"))
			})
		},
	}
}

func agentCommand() *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "listen for statsd datagrams and print every metric received",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bind",
				Value: ":" + statsd.DefaultPort,
				Usage: "address to listen on for incoming UDP datagrams",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print one JSON object per metric instead of log lines",
			},
		},
		Action: func(c *cli.Context) error {
			bind := c.String("bind")
			log.Infof("listening for incoming UDP datagrams on %s", bind)

			var handler statsdtest.Handler
			if c.Bool("json") {
				handler = &jsonHandler{enc: json.NewEncoder(os.Stdout)}
			} else {
				handler = statsdtest.HandlerFunc(logPacket)
			}

			return statsdtest.ListenAndServe(bind, handler)
		},
	}
}

// send dials the server, builds the client the flags describe, and runs the
// emission. Transport failures are reported as warnings, they do not fail
// the command.
func send(c *cli.Context, emit func(statsd.ClientInterface) error) error {
	serializer, err := serializerFor(c.String("format"))
	if err != nil {
		return err
	}

	transport, err := statsd.DialUDP(c.String("addr"))
	if err != nil {
		return err
	}
	defer transport.Close()

	client, err := statsd.NewClientWith(statsd.ClientConfig{
		Transport:  transport,
		Serializer: serializer,
		Namespace:  c.String("namespace"),
		OnError: func(err error) {
			log.WithError(err).Warn("sending the metric failed")
		},
	})
	if err != nil {
		return err
	}

	if c.Bool("debug") {
		return emit(debugstatsd.NewClient(client))
	}
	return emit(client)
}

func serializerFor(format string) (statsd.Serializer, error) {
	switch format {
	case "dogstatsd":
		return statsd.DogstatsdSerializer{}, nil
	case "telegraf":
		return statsd.TelegrafSerializer{}, nil
	case "graphite":
		return statsd.GraphiteSerializer{}, nil
	case "plain":
		return statsd.PlainSerializer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q, expected dogstatsd, telegraf, graphite, or plain", format)
}

func metricName(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", fmt.Errorf("missing metric name")
	}
	return c.Args().Get(0), nil
}

func metricNameAndFloat(c *cli.Context) (string, float64, error) {
	name, err := metricName(c)
	if err != nil {
		return "", 0, err
	}
	if c.NArg() < 2 {
		return "", 0, fmt.Errorf("missing metric value")
	}
	value, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad metric value: %s", c.Args().Get(1))
	}
	return name, value, nil
}

func tagFlags(c *cli.Context) []statsd.Tag {
	pairs := c.StringSlice("tag")
	tags := make([]statsd.Tag, 0, len(pairs))
	for _, pair := range pairs {
		name, value, _ := strings.Cut(pair, ":")
		tags = append(tags, statsd.T(name, value))
	}
	return tags
}

func run(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func logPacket(p statsdtest.Packet, a net.Addr) {
	fields := log.Fields{
		"type":  p.Type,
		"value": p.Value.Interface(),
		"from":  a.String(),
	}
	if p.Rate < 1 {
		fields["rate"] = p.Rate
	}
	if len(p.Tags) != 0 {
		tags := make(log.Fields, len(p.Tags))
		for _, t := range p.Tags {
			tags[t.Name] = t.Value
		}
		fields["tags"] = tags
	}
	log.WithFields(fields).Info(p.Name)
}

type jsonHandler struct {
	mutex sync.Mutex
	enc   *json.Encoder
}

type jsonRecord struct {
	Name  string            `json:"name"`
	Type  string            `json:"type"`
	Value interface{}       `json:"value"`
	Rate  float64           `json:"rate"`
	Tags  map[string]string `json:"tags,omitempty"`
	From  string            `json:"from,omitempty"`
}

func (h *jsonHandler) HandlePacket(p statsdtest.Packet, a net.Addr) {
	r := jsonRecord{
		Name:  p.Name,
		Type:  p.Type,
		Value: p.Value.Interface(),
		Rate:  p.Rate,
		From:  a.String(),
	}

	if len(p.Tags) != 0 {
		r.Tags = make(map[string]string, len(p.Tags))
		for _, t := range p.Tags {
			r.Tags[t.Name] = t.Value
		}
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.enc.Encode(r)
}
