// Command sectionbench drives the section graph headlessly: it streams a
// generated world around a moving camera, applies random block edits from a
// second goroutine and logs per-frame statistics.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/xlab/closer"

	"sectiongraph/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML settings file")
		frames     = flag.Int("frames", 600, "number of frames to simulate")
		editRate   = flag.Int("edits", 20, "random block edits per second")
		logEvery   = flag.Int("log-every", 60, "log statistics every N frames")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	if err := config.Set(settings); err != nil {
		log.Fatalf("apply settings: %v", err)
	}

	app := setup(config.Get())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
		app.shutdown()
	})

	go func() {
		defer closer.Close()
		defer close(done)
		if err := app.run(ctx, *frames, *editRate, *logEvery); err != nil && ctx.Err() == nil {
			log.Printf("sectionbench: %v", err)
		}
	}()
	closer.Hold()
}
