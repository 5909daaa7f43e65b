// Command alloy-loader-demo drives the loader end to end against an
// in-memory stand-in host, so the whole pipeline (mod discovery,
// dependency resolution, entrypoint initialization, and a short run of
// the runtime bridge) can be exercised without an actual game engine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alloy-modding/alloy-loader/internal/bridge/hooks"
	"github.com/alloy-modding/alloy-loader/internal/logging"
	"github.com/alloy-modding/alloy-loader/internal/resolve"
	"github.com/alloy-modding/alloy-loader/internal/version"

	"github.com/alloy-modding/alloy-loader/internal/loader"
)

func main() {
	cliArgs := ParseCLIArgs()

	logPath := filepath.Join(cliArgs.LogDir, fmt.Sprintf("alloy-loader-%s.log", time.Now().Format("2006-01-02_15-04-05")))
	store := logging.NewStore(512)
	if err := logging.Init(logPath, &storeWriter{store: store}); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Close()
	logging.SetDebug(cliArgs.Verbose)

	adapter := newDemoAdapter()

	result, err := loader.Load(loader.Config{
		ModsDir:          cliArgs.ModsDir,
		Reserved:         resolve.DefaultReservedIDs(),
		HostVersion:      version.MustParse("1.20.4"),
		LoaderVersion:    version.MustParse("0.1.0"),
		Adapter:          adapter,
		AsyncConcurrency: 4,
		OverridesPath:    cliArgs.OverridesPath,
	}, demoHostDispatcher{})
	if err != nil {
		logging.Errorf("Main: load failed: %v", err)
		os.Exit(1)
	}
	fmt.Println(result.Report.String())

	result.Context.UpgradeServer()
	result.Context.PlayerJoin("p1")

	if out, err := result.Commands.Dispatch("hello", "p1"); err != nil {
		logging.Errorf("Main: dispatching demo command: %v", err)
	} else {
		fmt.Println(out)
	}

	if dir, err := result.Context.Server.DataDirectory(); err != nil {
		logging.Errorf("Main: reading data directory: %v", err)
	} else {
		logging.Infof("Main: data directory is %s", dir)
	}
	if err := result.Context.Server.Broadcast("the loader is live"); err != nil {
		logging.Errorf("Main: broadcasting: %v", err)
	}

	result.Context.OpenInventory("p1", "demo-chest")
	result.Context.ContainerClick("p1", 0, 0)

	runTickLoop(result.Context)
}

// runTickLoop drives the scheduler on a fixed tick rate until interrupted,
// marking every tick's context as the game thread (spec §4.5's packet
// handling distinguishes the game thread from I/O threads).
func runTickLoop(bridge *hooks.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	ctx := hooks.WithGameThread(context.Background())
	for {
		select {
		case <-ticker.C:
			bridge.Tick()
			_ = ctx // marked context available to packet handlers driven from this loop
		case <-sigCh:
			logging.Infof("Main: shutting down")
			bridge.RevertServer()
			return
		}
	}
}

// storeWriter adapts a logging.Store to an io.Writer so logging.Init can
// multiplex log lines into it alongside the log file.
type storeWriter struct {
	store *logging.Store
}

func (w *storeWriter) Write(p []byte) (int, error) {
	w.store.Add(logging.Entry{Level: "INFO", Message: string(p)})
	return len(p), nil
}
