package statsd_test

import (
	"fmt"
	"time"

	"github.com/segmentio/statsd"
	"github.com/segmentio/statsd/statsdtest"
)

func Example() {
	// Programs talking to a real server would use statsd.DialUDP instead,
	// the recording transport keeps the example self-contained.
	transport := &statsdtest.Transport{}

	client, _ := statsd.NewClientWith(statsd.ClientConfig{
		Transport:  transport,
		Serializer: statsd.DogstatsdSerializer{},
		Namespace:  "myapp",
		Tags:       []statsd.Tag{statsd.T("env", "prod")},
	})

	client.Incr("server.start", nil, 1)
	client.Gauge("fuel.level", 0.5, []statsd.Tag{statsd.T("tank", "main")}, 1)
	client.Timing("db.query", 150*time.Millisecond, nil, 1)

	for _, packet := range transport.Packets() {
		fmt.Println(packet)
	}

	// Output:
	// myapp.server.start:1|c|#env:prod
	// myapp.fuel.level:0.5|g|#env:prod,tank:main
	// myapp.db.query:150|ms|#env:prod
}
