package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned by New for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name passed to New
	DisplayName string // Human readable name
	Description string
	Group       string // Grouping category for listings
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

// Options carries the inputs some scene builders need
type Options struct {
	TexturePath string      // Image for the textured scene, empty for a checker fallback
	MeshPath    string      // PLY or glTF file for the mesh scene
	Seed        int64       // Seed for randomly generated scene content
	Logger      core.Logger // Receives loader messages, may be nil
}

type builder func(opts Options) (*Scene, error)

type entry struct {
	info  SceneInfo
	build builder
}

const (
	groupBasic   = "Sphere Scenes"
	groupCornell = "Cornell Scenes"
	groupAssets  = "Asset Scenes"
)

var registry = []entry{
	{
		info: SceneInfo{ID: "random", Description: "Random field of small spheres around three large ones", Group: groupBasic},
		build: func(opts Options) (*Scene, error) {
			return NewRandomScene(opts.Seed), nil
		},
	},
	{
		info: SceneInfo{ID: "initial", Description: "Three spheres with a hollow glass shell", Group: groupBasic},
		build: func(opts Options) (*Scene, error) {
			return NewInitialScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "cornell", Description: "Cornell box with two rotated boxes and a ceiling light", Group: groupCornell},
		build: func(opts Options) (*Scene, error) {
			return NewCornellScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke and fog blocks", Group: groupCornell},
		build: func(opts Options) (*Scene, error) {
			return NewCornellSmokeScene(), nil
		},
	},
	{
		info:  SceneInfo{ID: "textured", Description: "Image textured sphere, checker when no texture is given", Group: groupAssets},
		build: NewTexturedScene,
	},
	{
		info:  SceneInfo{ID: "mesh", Description: "PLY or glTF mesh inside a lit enclosure", Group: groupAssets},
		build: NewMeshScene,
	},
}

// New builds the named scene. The returned scene has no BVH yet.
func New(name string, opts Options) (*Scene, error) {
	for _, e := range registry {
		if e.info.ID == name {
			s, err := e.build(opts)
			if err != nil {
				return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// Names returns the IDs of all built-in scenes in registration order
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.info.ID
	}
	return names
}

// List returns metadata for every built-in scene, sorted by display name
func List() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, e := range registry {
		info := e.info
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// ListGroups returns the built-in scenes grouped by category, groups in alphabetical order
func ListGroups() []SceneGroup {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range List() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	groups := make([]SceneGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups
}

// titleCase converts an ID-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
