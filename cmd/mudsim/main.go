// Command mudsim is a headless demo driver for the world-simulation core:
// it loads a YAML data catalog, builds a small dungeon, reset-spawns a
// goblin into it, and runs the tick loop that exercises combat,
// effects, and regeneration until interrupted. Grounded on the teacher's
// cmd/gameserver/main.go (config loading, slog setup, errgroup.WithContext
// plus signal.Notify shutdown), generalized from a network game server to
// a single-process simulation harness since this module has no transport
// layer of its own (spec.md Non-goals).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/brackenmoor/mudcore/internal/ai"
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/combat"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/effects"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/persist"
	"github.com/brackenmoor/mudcore/internal/registry"
	"github.com/brackenmoor/mudcore/internal/reset"
	"github.com/brackenmoor/mudcore/internal/world"
	"github.com/brackenmoor/mudcore/internal/worlddata"
)

const (
	regenIntervalMs   = 1_000
	effectsIntervalMs = 500
	combatIntervalMs  = 2_000
	wanderIntervalMs  = 5_000
)

func main() {
	catalogPath := flag.String("catalog", "config/catalog.yaml", "path to the world-data YAML catalog")
	dsn := flag.String("dsn", os.Getenv("MUDSIM_DSN"), "optional Postgres DSN for snapshot persistence")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	seed := flag.Int64("seed", 1, "RNG seed, for repeatable demo runs")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(*logLevel),
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *catalogPath, *dsn, *seed); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// parseLogLevel converts a string log level to slog.Level, defaulting to
// Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(ctx context.Context, catalogPath, dsn string, seed int64) error {
	catalog, err := worlddata.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("loading world data catalog: %w", err)
	}
	slog.Info("catalog loaded",
		"races", len(catalog.RaceIDs()),
		"jobs", len(catalog.JobIDs()),
		"abilities", len(catalog.AbilityIDs()),
		"effects", len(catalog.EffectIDs()),
		"templates", len(catalog.TemplateIDs()))

	var store *persist.SnapshotStore
	if dsn != "" {
		if err := persist.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		store, err = persist.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to snapshot store: %w", err)
		}
		defer store.Close()
		slog.Info("snapshot store connected")
	}

	g, gctx := errgroup.WithContext(ctx)
	scheduler := NewTickScheduler(gctx, g)
	rng := NewSeededRNG(seed)

	var nextOID atomic.Int64
	mintOID := func() int64 { return nextOID.Add(1) }
	factory := NewObjectFactory(mintOID, catalog)

	w := registry.NewWorld()
	dungeon := world.NewDungeon(geo.MapDimensions{Width: 3, Height: 3, Layers: 1})
	dungeon.SetID("demo", w.Dungeons)
	count := dungeon.GenerateRooms(mintOID, direction.DefaultExits)
	slog.Info("dungeon generated", "rooms", count)

	centerRoom, _ := dungeon.RoomAt(geo.Coordinate{X: 1, Y: 1, Z: 0})
	roomRef := world.FormatRoomRef(dungeon.ID(), centerRoom.Coordinates)

	goblinTemplate, err := catalog.ResolveTemplate("goblin")
	if err != nil {
		return fmt.Errorf("resolving goblin template: %w", err)
	}
	dungeon.SetTemplate("goblin", goblinTemplate)
	swordTemplate, err := catalog.ResolveTemplate("rusty-sword")
	if err != nil {
		return fmt.Errorf("resolving rusty-sword template: %w", err)
	}
	dungeon.SetTemplate("rusty-sword", swordTemplate)

	goblinReset := reset.New("goblin", roomRef, 1, 2, []string{"rusty-sword"}, nil, factory, dungeon)
	goblinReset.LeashRooms = 1
	dungeon.Resets = append(dungeon.Resets, goblinReset)

	broadcast := func(text string, group collab.MessageGroup) {
		slog.Info("dungeon broadcast", "text", text)
	}
	spawned := dungeon.ExecuteResets(broadcast)
	slog.Info("initial resets executed", "spawned", spawned)

	hero := mob.New(mintOID(), "hero", "the hero", 70, "human", "warrior", 5, catalog)
	hero.SetSink(collab.SinkFunc(func(text string, group collab.MessageGroup) {
		LogSink{Label: "hero", Logger: slog.Default()}.Send(text, group)
	}))
	hero.Recompute(resolveOrNil(catalog, "human"), resolveOrNilJob(catalog, "warrior"), true, -1, -1)
	centerRoom.Add(centerRoom, hero)

	var goblin *mob.Mob
	for _, n := range goblinReset.Spawned() {
		if m, ok := n.(*mob.Mob); ok {
			goblin = m
			break
		}
	}
	if goblin == nil {
		return fmt.Errorf("goblin reset produced no mob")
	}

	onLeaveCombat := func(m *mob.Mob) {
		combat.LeaveCombatSwitchTarget(m, w.CombatQueue, func(o *mob.Mob) bool { return ai.SameRoom(m, o) }, nil)
	}
	aiEnv := ai.Env{Queue: w.CombatQueue, Sched: scheduler, RNG: rng, OnLeaveCombat: onLeaveCombat}

	if err := combat.SetCombatTarget(hero, goblin, w.CombatQueue, onLeaveCombat); err != nil {
		return fmt.Errorf("engaging goblin: %w", err)
	}
	combat.StartThreatDecay(goblin, scheduler, ai.SameRoom)
	w.Regeneration.Add(hero)
	w.Regeneration.Add(goblin)
	if goblin.Behaviors().Has(mob.Wander) {
		w.Wandering.Add(goblin)
	}

	deathHandler := func(target, killer *mob.Mob) {
		slog.Info("mob died", "target", target.Base().Keywords(), "killer", killer.Base().Keywords())
		w.CombatQueue.Remove(target)
		w.CombatQueue.Remove(killer)
		killer.SetCombatTargetRaw(nil)
	}

	scheduler.SetAbsoluteInterval(func(nowMs int64) {
		regenTick(w, nowMs)
	}, regenIntervalMs)

	scheduler.SetAbsoluteInterval(func(nowMs int64) {
		effectsTick(w, nowMs)
	}, effectsIntervalMs)

	scheduler.SetAbsoluteInterval(func(nowMs int64) {
		combatTick(w, rng, aiEnv, deathHandler)
	}, combatIntervalMs)

	scheduler.SetAbsoluteInterval(func(nowMs int64) {
		for _, m := range w.Wandering.Snapshot() {
			aiEnv.Wander(m, goblinReset.LeashRooms)
		}
	}, wanderIntervalMs)

	if store != nil {
		scheduler.SetAbsoluteInterval(func(nowMs int64) {
			if err := store.SaveDungeon(gctx, dungeon, dungeon); err != nil {
				slog.Error("snapshot save failed", "err", err)
			}
		}, 30_000)
	}

	slog.Info("mudsim running", "dungeon", dungeon.ID())
	return g.Wait()
}

func resolveOrNil(c *worlddata.Catalog, id string) *collab.Race {
	r, err := c.ResolveRace(id)
	if err != nil {
		return nil
	}
	return r
}

func resolveOrNilJob(c *worlddata.Catalog, id string) *collab.Job {
	j, err := c.ResolveJob(id)
	if err != nil {
		return nil
	}
	return j
}

// regenTick heals every member of the regeneration set by 1/20 of its max
// health and 1/20 of its max mana, and drops members that are already at
// full health and mana out of the set.
func regenTick(w *registry.World, nowMs int64) {
	for _, m := range w.Regeneration.Snapshot() {
		if m.HealthRatio() >= 1 && m.ManaRatio() >= 1 {
			w.Regeneration.Remove(m)
			continue
		}
		m.Heal(m.MaxHealth() / 20)
		m.RestoreMana(m.MaxMana() / 20)
	}
}

// effectsTick services every mob with at least one active effect.
func effectsTick(w *registry.World, nowMs int64) {
	for _, m := range w.Effects.Snapshot() {
		effects.ProcessTick(m, nowMs,
			func(amount int32) { m.ReduceHealth(amount) },
			func(amount int32) { m.Heal(amount) },
			func(target *mob.Mob, message string) {
				slog.Info("effect expired", "target", target.Base().Keywords(), "message", message)
			})
		if len(m.ActiveEffects()) == 0 {
			w.Effects.Remove(m)
		}
	}
}

// combatTick lands one hit from each queued mob onto its combat target,
// the simplified stand-in for the (out of scope) command-driven attack
// loop a real transport layer would feed spec.md's combat pipeline. A
// wimpy mob gets its flee check before it swings.
func combatTick(w *registry.World, rng collab.RNG, aiEnv ai.Env, death combat.DeathHandler) {
	for _, attacker := range w.CombatQueue.Snapshot() {
		if aiEnv.FleeCheck(attacker) {
			continue
		}
		target := attacker.CombatTarget()
		if target == nil {
			continue
		}
		amount := int32(5 + rng.Intn(6))
		shields := effects.ShieldView{M: target}
		combat.Damage(attacker, target, amount, "physical", shields, w.CombatQueue, aiEnv.OnLeaveCombat, ai.SameRoom, nil, death, nil)
	}
}
