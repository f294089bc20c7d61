package world

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"frontiercraft.ai/internal/persistence/snapshot"
	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/tasks"
	"frontiercraft.ai/internal/sim/tuning"
	"frontiercraft.ai/internal/sim/world/feature/actions"
	"frontiercraft.ai/internal/sim/world/feature/crafting"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

type Config struct {
	ID   string
	Seed int64
}

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome  protocol.WelcomeMsg
	Catalogs []protocol.CatalogMsg
}

type ActionEnvelope struct {
	ActorID string
	Act     protocol.ActMsg
}

type RecordedJoin struct {
	ActorID string `json:"actor_id"`
	Name    string `json:"name"`
}

type RecordedAction struct {
	ActorID string          `json:"actor_id"`
	Act     protocol.ActMsg `json:"act"`
}

// World is a single-threaded authoritative simulation. All state must be
// accessed only from the world loop goroutine; inventory mutations within
// one tick are therefore atomic relative to every other query on that tick.
type World struct {
	cfg  Config
	tun  tuning.Tuning
	cats *catalogs.Catalogs
	log  *log.Logger

	tick  atomic.Uint64
	sched *tasks.Scheduler
	reg   *actions.Registry

	actors        map[string]*model.Actor
	clients       map[string]*clientState
	orchestrators map[string]*crafting.Orchestrator
	containers    map[string]*model.Container
	objects       map[string]*model.WorldObject

	inbox chan ActionEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}

	nextActorNum  atomic.Uint64
	nextObjectNum atomic.Uint64

	// Optional loggers (may be nil). Implemented in internal/persistence/*.
	tickLogger  TickLogger
	auditLogger AuditLogger

	// Optional snapshot sink (may be nil); writing happens off-thread.
	snapshotSink chan<- snapshot.SnapshotV1
}

type clientState struct {
	Out chan []byte
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

type TickLogEntry struct {
	Tick    uint64           `json:"tick"`
	Joins   []RecordedJoin   `json:"joins,omitempty"`
	Leaves  []string         `json:"leaves,omitempty"`
	Actions []RecordedAction `json:"actions,omitempty"`
}

// AuditEntry records one committed economy mutation.
type AuditEntry struct {
	Tick    uint64 `json:"tick"`
	Actor   string `json:"actor"`
	Action  string `json:"action"` // e.g. "CRAFT_DONE", "BUILD_DONE"
	CraftID string `json:"craft_id,omitempty"`
	Item    string `json:"item,omitempty"`
	Count   int    `json:"count,omitempty"`
	Object  string `json:"object,omitempty"`
}

func New(cfg Config, tun tuning.Tuning, cats *catalogs.Catalogs, logger *log.Logger) *World {
	w := &World{
		cfg:           cfg,
		tun:           tun,
		cats:          cats,
		log:           logger,
		sched:         tasks.NewScheduler(),
		reg:           actions.NewRegistry(logger),
		actors:        map[string]*model.Actor{},
		clients:       map[string]*clientState{},
		orchestrators: map[string]*crafting.Orchestrator{},
		containers:    map[string]*model.Container{},
		objects:       map[string]*model.WorldObject{},
		inbox:         make(chan ActionEnvelope, 256),
		join:          make(chan JoinRequest, 16),
		leave:         make(chan string, 16),
		stop:          make(chan struct{}),
	}
	w.registerBuiltinActions()
	return w
}

func (w *World) SetTickLogger(l TickLogger)                    { w.tickLogger = l }
func (w *World) SetAuditLogger(l AuditLogger)                  { w.auditLogger = l }
func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }
func (w *World) Registry() *actions.Registry                   { return w.reg }

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.tun.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingActions []ActionEnvelope
	var pendingJoins []JoinRequest
	var pendingLeaves []string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			pendingJoins = append(pendingJoins, req)
		case id := <-w.leave:
			pendingLeaves = append(pendingLeaves, id)
		case env := <-w.inbox:
			pendingActions = append(pendingActions, env)
		case <-ticker.C:
			w.step(pendingJoins, pendingLeaves, pendingActions)
			pendingJoins = pendingJoins[:0]
			pendingLeaves = pendingLeaves[:0]
			pendingActions = pendingActions[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// Step advances one tick outside the Run loop. Test harness entry point.
func (w *World) Step(acts []ActionEnvelope) {
	w.step(nil, nil, acts)
}

func (w *World) step(joins []JoinRequest, leaves []string, acts []ActionEnvelope) {
	now := w.tick.Add(1)

	entry := TickLogEntry{Tick: now}

	for _, req := range joins {
		resp := w.joinActor(req.Name, req.Out)
		entry.Joins = append(entry.Joins, RecordedJoin{ActorID: resp.Welcome.ActorID, Name: req.Name})
		if req.Resp != nil {
			req.Resp <- resp
		}
	}
	for _, id := range leaves {
		delete(w.clients, id)
		entry.Leaves = append(entry.Leaves, id)
	}

	for _, a := range w.actors {
		a.Moving = false
	}

	for _, env := range acts {
		if w.applyAct(env.ActorID, env.Act, now) {
			entry.Actions = append(entry.Actions, RecordedAction{ActorID: env.ActorID, Act: env.Act})
		}
	}

	w.sched.Tick()
	w.decayDurability()

	w.broadcastObs(now)

	if w.tickLogger != nil {
		if err := w.tickLogger.WriteTick(entry); err != nil {
			w.log.Printf("tick log: %v", err)
		}
	}
	if w.snapshotSink != nil && now%uint64(w.tun.SnapshotEveryTicks) == 0 {
		select {
		case w.snapshotSink <- w.BuildSnapshot():
		default:
			w.log.Printf("snapshot sink full, skipping tick %d", now)
		}
	}
}

// decayDurability applies the per-tick hour delta to every registered
// container. Spoilage decays everywhere; usage-time wear only applies to
// equipment containers (the container op enforces that split).
func (w *World) decayDurability() {
	for _, id := range sortedContainerIDs(w.containers) {
		inventory.UpdateDurabilityTick(w, w.containers[id], w.tun.HoursPerTick)
	}
}

func (w *World) audit(e AuditEntry) {
	if w.auditLogger == nil {
		return
	}
	if err := w.auditLogger.WriteAudit(e); err != nil {
		w.log.Printf("audit log: %v", err)
	}
}

func (w *World) newObjectID() string {
	return fmt.Sprintf("O%d", w.nextObjectNum.Add(1))
}
