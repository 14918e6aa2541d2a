package game

// flushTelemetry closes the stats window when it is due: it samples the
// roster, then logs and writes the window and perf records.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	g.sim.Sample(&g.sample)

	stats := g.collector.Flush(tick, g.sample)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			g.logger.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
