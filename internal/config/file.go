package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation problem of a config file.
var ErrInvalidConfig = errors.New("invalid config")

// File is the YAML configuration of a session.
type File struct {
	FPSLimit int    `yaml:"fps_limit"`
	Catalog  string `yaml:"catalog"`
	Icons    string `yaml:"icons"`

	Pickup              PickupSection      `yaml:"pickup"`
	Interact            InteractSection    `yaml:"interact"`
	SlotRow             SlotRowSection     `yaml:"slot_row"`
	PlayerInventorySize int                `yaml:"player_inventory_size"`
	Containers          []ContainerSection `yaml:"containers"`
	StarterItems        []StarterItem      `yaml:"starter_items"`

	Storage  StorageSection  `yaml:"storage"`
	Journal  JournalSection  `yaml:"journal"`
	Observer ObserverSection `yaml:"observer"`
}

type PickupSection struct {
	FollowLerp         float32 `yaml:"follow_lerp"`
	FreezeRotation     bool    `yaml:"freeze_rotation"`
	DropForwardImpulse float32 `yaml:"drop_forward_impulse"`
	SnapRange          float32 `yaml:"snap_range"`
}

type InteractSection struct {
	UseRange     float32 `yaml:"use_range"`
	PanelColumns int     `yaml:"panel_columns"`
}

type SlotRowSection struct {
	MaxWidth    float32    `yaml:"max_width"`
	StartOffset [3]float32 `yaml:"start_offset"`
	Euler       [3]float32 `yaml:"euler"` // degrees
	Scale       float32    `yaml:"scale"`
	RowSpacing  float32    `yaml:"row_spacing"`
}

// PoseSection is a position plus XYZ euler angles in degrees.
type PoseSection struct {
	Position [3]float32 `yaml:"position"`
	Euler    [3]float32 `yaml:"euler"`
}

type ContainerSection struct {
	Name        string       `yaml:"name"`
	Size        int          `yaml:"size"`
	OutputSlot  *int         `yaml:"output_slot"`
	Position    [3]float32   `yaml:"position"`
	Extents     [3]float32   `yaml:"extents"`
	BuildPose   *PoseSection `yaml:"build_pose"` // makes the container a bench
	PointOfView *PoseSection `yaml:"point_of_view"`
}

// StarterItem seeds an inventory on a fresh start. An empty Container means
// the player inventory.
type StarterItem struct {
	Container string `yaml:"container"`
	Item      string `yaml:"item"`
	Count     int    `yaml:"count"`
}

type StorageSection struct {
	Path string `yaml:"path"` // empty disables saving
}

type JournalSection struct {
	Dir string `yaml:"dir"` // empty disables the journal
}

type ObserverSection struct {
	Addr string `yaml:"addr"` // empty disables the observer
}

// Default returns a small playable setup: a shelf and a workbench.
func Default() File {
	zero := 0
	return File{
		FPSLimit: 60,
		Catalog:  "catalog.yaml",
		Pickup: PickupSection{
			FollowLerp:     18,
			FreezeRotation: true,
			SnapRange:      10,
		},
		Interact:            InteractSection{UseRange: 3, PanelColumns: 9},
		SlotRow:             SlotRowSection{MaxWidth: 0.3, Euler: [3]float32{0, 30, 0}, Scale: 1, RowSpacing: 0.25},
		PlayerInventorySize: 9,
		Containers: []ContainerSection{
			{
				Name:     "shelf",
				Size:     4,
				Position: [3]float32{-1, 0.5, -2},
				Extents:  [3]float32{0.5, 0.5, 0.5},
			},
			{
				Name:        "workbench",
				Size:        4,
				OutputSlot:  &zero,
				Position:    [3]float32{1, 0.5, -2},
				Extents:     [3]float32{0.75, 0.5, 0.5},
				BuildPose:   &PoseSection{Position: [3]float32{1, 1.1, -2}},
				PointOfView: &PoseSection{Position: [3]float32{1, 2.2, -1}, Euler: [3]float32{-50, 0, 0}},
			},
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (File, error) {
	f := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes raw over the defaults. A containers list in raw replaces the
// default containers.
func Parse(raw []byte) (File, error) {
	f := Default()
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("parsing config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// Validate reports every problem at once.
func (f *File) Validate() error {
	var errs []error
	if f.Catalog == "" {
		errs = append(errs, errors.New("catalog path is empty"))
	}
	if f.PlayerInventorySize <= 0 {
		errs = append(errs, fmt.Errorf("player_inventory_size %d must be positive", f.PlayerInventorySize))
	}
	if f.Pickup.FollowLerp <= 0 {
		errs = append(errs, fmt.Errorf("pickup.follow_lerp %v must be positive", f.Pickup.FollowLerp))
	}
	if f.SlotRow.MaxWidth <= 0 {
		errs = append(errs, fmt.Errorf("slot_row.max_width %v must be positive", f.SlotRow.MaxWidth))
	}

	names := make(map[string]bool, len(f.Containers))
	for i, c := range f.Containers {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("containers[%d]: name is empty", i))
		case names[c.Name]:
			errs = append(errs, fmt.Errorf("containers[%d]: duplicate name %q", i, c.Name))
		}
		names[c.Name] = true
		if c.Size <= 0 {
			errs = append(errs, fmt.Errorf("containers[%d]: size %d must be positive", i, c.Size))
		}
		if c.OutputSlot != nil && (*c.OutputSlot < 0 || *c.OutputSlot >= c.Size) {
			errs = append(errs, fmt.Errorf("containers[%d]: output_slot %d out of range", i, *c.OutputSlot))
		}
	}
	for i, s := range f.StarterItems {
		if s.Container != "" && !names[s.Container] {
			errs = append(errs, fmt.Errorf("starter_items[%d]: unknown container %q", i, s.Container))
		}
		if s.Item == "" || s.Count <= 0 {
			errs = append(errs, fmt.Errorf("starter_items[%d]: needs an item and a positive count", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Apply publishes the runtime-tunable values to the process settings.
func (f *File) Apply() {
	SetFPSLimit(f.FPSLimit)
	SetFollowLerp(f.Pickup.FollowLerp)
	SetUseRange(f.Interact.UseRange)
}
