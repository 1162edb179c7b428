package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/encodeous/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/davidbalbert/linkstate/config"
	"github.com/davidbalbert/linkstate/ospf"
)

var (
	version     string
	configPath  string
	metricsAddr string
	verbose     bool
)

func main() {
	flag.StringVar(&configPath, "config", "/etc/linkstated/linkstated.yaml", "path to linkstated.yaml")
	flag.StringVar(&metricsAddr, "metrics", "", "listen address for prometheus metrics (empty disables the listener)")
	flag.BoolVar(&verbose, "verbose", false, "log at debug level")

	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	slog.Info("starting linkstated", "version", version, "uid", os.Getuid())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("linkstated failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	routers := conf.Build()
	slog.Info("loaded topology", "routers", len(routers), "areas", len(conf.AreaIDs()))

	var metrics *ospf.Metrics
	if metricsAddr != "" {
		metrics, err = ospf.NewMetrics(nil)
		if err != nil {
			return err
		}
	}

	areas := make(map[ospf.AreaID]*ospf.Area)
	for _, id := range conf.AreaIDs() {
		a := ospf.NewArea(id)
		a.SetMetrics(metrics)
		areas[id] = a
	}

	// Origination mutates each router's history, so it happens up front on
	// one goroutine; only the flooding into areas fans out.
	perArea := originate(routers, areas)

	var flood errgroup.Group

	for id, lsas := range perArea {
		a, lsas := areas[id], lsas

		flood.Go(func() error {
			for _, lsa := range lsas {
				a.AddLSA(lsa)
			}

			slog.Debug("area converged", "area", a.ID, "lsas", a.LSACount())

			return nil
		})
	}

	if err := flood.Wait(); err != nil {
		return err
	}

	for _, id := range conf.AreaIDs() {
		printRoutingTables(os.Stdout, areas[id])
	}

	if metricsAddr == "" {
		return nil
	}

	// With a metrics listener the daemon stays up, reprinting tables as
	// area databases change.
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return serveMetrics(ctx, metricsAddr)
	})

	for _, id := range conf.AreaIDs() {
		a := areas[id]

		g.Go(func() error {
			watchArea(ctx, a)
			return nil
		})
	}

	return g.Wait()
}

// originate builds every router's LSAs: one router LSA per area the
// router has interfaces in, and one network LSA per segment the router is
// DR for.
func originate(routers []*ospf.Router, areas map[ospf.AreaID]*ospf.Area) map[ospf.AreaID][]ospf.LSA {
	perArea := make(map[ospf.AreaID][]ospf.LSA)

	for _, r := range routers {
		inArea := make(map[ospf.AreaID]bool)
		for _, iface := range r.Interfaces {
			inArea[iface.AreaID] = true
		}

		for id := range inArea {
			if a, ok := areas[id]; ok {
				a.AddRouter(r)
			}

			perArea[id] = append(perArea[id], r.OriginateRouterLSA(id))
		}

		for _, iface := range r.Interfaces {
			lsa := r.OriginateNetworkLSA(iface, attachedRouters(routers, iface))
			if lsa == nil {
				continue
			}

			perArea[iface.AreaID] = append(perArea[iface.AreaID], lsa)
		}
	}

	return perArea
}

// attachedRouters finds every router with an interface on the DR
// interface's segment, matching by network address.
func attachedRouters(routers []*ospf.Router, dr *ospf.Interface) []ospf.RouterID {
	segment := ospf.NetworkAddress(dr.Address, dr.Mask)

	var attached []ospf.RouterID
	for _, r := range routers {
		for _, iface := range r.Interfaces {
			if iface.AreaID != dr.AreaID || iface.State == ospf.StateDown {
				continue
			}

			if ospf.NetworkAddress(iface.Address, dr.Mask) == segment {
				attached = append(attached, r.ID)
				break
			}
		}
	}

	return attached
}

// watchArea reprints the area's routing tables every time its database
// accepts a change.
func watchArea(ctx context.Context, a *ospf.Area) {
	seq := a.LastSeq()

	for {
		next := a.AwaitChange(ctx, seq)
		if next == seq {
			// Context canceled.
			return
		}
		seq = next

		printRoutingTables(os.Stdout, a)
	}
}

func printRoutingTables(w *os.File, a *ospf.Area) {
	table := a.RoutingTable()

	sources := maps.Keys(table)
	slices.Sort(sources)

	fmt.Fprintf(w, "area %s\n", a.ID)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "source\tdestination\tcost\tnext hop")

	for _, src := range sources {
		dests := maps.Keys(table[src])
		slices.Sort(dests)

		for _, dest := range dests {
			entry := table[src][dest]

			next := entry.NextHop
			if next == "" {
				next = "-"
			}

			fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", src, dest, entry.Cost, next)
		}
	}

	tw.Flush()
	fmt.Fprintln(w)
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("serving metrics", "addr", addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
