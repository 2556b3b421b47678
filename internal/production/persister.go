// Package production provides production integrations for statetree
// machines: persistence, change forwarding, visualization.
// Implements adapters using stdlib where possible.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/statetree"
)

// Snapshot is the serializable snapshot of a machine: its identity plus the
// protocol script that rebuilds it.
type Snapshot struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Script    []string  `json:"script" yaml:"script"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// TakeSnapshot captures the machine's structure, current selections, and
// data as a replayable script.
func TakeSnapshot(m *statetree.Machine) Snapshot {
	return Snapshot{
		MachineID: m.ID(),
		Script:    m.Serialize(),
		Timestamp: time.Now(),
	}
}

// Restore replays the snapshot into a fresh live machine.
func (s Snapshot) Restore() (*statetree.Machine, error) {
	m := statetree.NewMachine(statetree.WithID(s.MachineID))
	if err := m.InterpretAll(s.Script); err != nil {
		return nil, fmt.Errorf("replay snapshot %q: %w", s.MachineID, err)
	}
	if err := m.FinishEditing(); err != nil {
		return nil, err
	}
	return m, nil
}

// Persister saves and loads machine snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, machineID string) (Snapshot, error)
}

// JSONPersister is a stdlib-only file-based persister using JSON.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.MachineID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (Snapshot, error) {
	fn := filepath.Join(p.dir, machineID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.MachineID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (Snapshot, error) {
	fn := filepath.Join(p.dir, machineID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.MachineID = machineID // Ensure ID

	// A snapshot that cannot replay is corrupt; catch it at load time.
	if _, err := snapshot.Restore(); err != nil {
		return Snapshot{}, fmt.Errorf("script validation after load: %w", err)
	}

	return snapshot, nil
}
