package settings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

const testModule = "deltagreen"

var errBackendDown = errors.New("backend down")

// failingBackend fails writes of selected setting ids.
type failingBackend struct {
	*MemoryBackend
	failSave map[string]bool
	failAll  bool
	saves    atomic.Int64
}

func newFailingBackend(ids ...string) *failingBackend {
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), failSave: make(map[string]bool)}
	for _, id := range ids {
		b.failSave[id] = true
	}

	return b
}

func (b *failingBackend) Load(ctx context.Context, p Partition, key Key) ([]byte, bool, error) {
	if b.failAll {
		return nil, false, errBackendDown
	}

	return b.MemoryBackend.Load(ctx, p, key)
}

func (b *failingBackend) Save(ctx context.Context, p Partition, key Key, data []byte) error {
	b.saves.Add(1)

	if b.failAll || b.failSave[key.ID] {
		return errBackendDown
	}

	return b.MemoryBackend.Save(ctx, p, key, data)
}

// mapLocalizer returns the mapped text, or the key itself.
type mapLocalizer map[string]string

func (m mapLocalizer) Localize(key string) string {
	if v, ok := m[key]; ok {
		return v
	}

	return key
}

// recordingNotifier counts notifications and keeps the last result.
type recordingNotifier struct {
	mu     sync.Mutex
	calls  int
	result Result
}

func (n *recordingNotifier) Notify(_ context.Context, r Result) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	n.result = r
}

const (
	nsAutomation Namespace = "automation"
	nsHandler    Namespace = "handler"
	nsDisplay    Namespace = "display"
)

func testSchema() *Schema {
	return NewSchema(testModule, "DG.Settings").
		Declare(nsAutomation,
			Definition{ID: "skillFailure", Type: TypeBoolean, Default: false},
		).
		Declare(nsHandler,
			Definition{ID: "keepSanityPrivate", Type: TypeBoolean, Default: false, RequiresReload: true},
			Definition{
				ID:   "skillImprovementFormula",
				Type: TypeString,
				Choices: []Choice{
					{Value: "1", Label: "DG.Settings.skillImprovementFormula.1"},
					{Value: "1d3", Label: "DG.Settings.skillImprovementFormula.2"},
					{Value: "1d4", Label: "DG.Settings.skillImprovementFormula.3"},
					{Value: "1d4-1", Label: "DG.Settings.skillImprovementFormula.4"},
				},
				Default: "1d4",
			},
			Definition{ID: "bonusDice", Type: TypeNumber, Default: 2, Range: &Range{Min: Bound(0), Max: Bound(5), Step: Bound(1)}},
			Definition{ID: "agencyName", Type: TypeString, Default: "Delta Green"},
		).
		Declare(nsDisplay,
			Definition{ID: "sortSkills", Type: TypeBoolean, Default: false, Scope: ScopeClient},
		).
		Bind(Binding{Namespace: nsAutomation, Name: "menu.automation", Label: "menu.automation.label", Restricted: true}).
		Bind(Binding{Namespace: nsHandler, Name: "menu.handler", Label: "menu.handler.label", Restricted: true}).
		Bind(Binding{Namespace: nsDisplay, Name: "menu.display", Label: "menu.display.label", Icon: "fa-solid fa-eye"})
}

func registeredStore(backend Backend) (*PersistedStore, *Schema, error) {
	store := NewStore(backend)
	schema := testSchema()

	return store, schema, RegisterAll(context.Background(), store, schema, KeyLocalizer)
}
