// Package profile bundles named parameter presets for the CLI, so a
// user picks a target ("web", "archive") instead of tuning individual
// flags. Explicit flags still override preset values.
package profile

import "github.com/Bindhushree2529/image-restore-lab/internal/engine"

// Profile is a named set of enhancement parameters.
type Profile struct {
	Name         string
	MaxDimension int    // bounding dimension before the transform
	Format       string // output format
	Quality      int    // lossy quality 1-100
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:         "default",
		MaxDimension: engine.DefaultMaxDimension,
		Format:       "png",
		Quality:      engine.DefaultJPEGQuality,
	},
	"web": {
		Name:         "web",
		MaxDimension: engine.DefaultMaxDimension,
		Format:       "jpeg",
		Quality:      82,
	},
	"archive": {
		Name:         "archive",
		MaxDimension: 2048,
		Format:       "png",
		Quality:      engine.DefaultJPEGQuality,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Options converts the profile to engine options.
func (p Profile) Options() engine.Options {
	return engine.Options{
		MaxDimension: p.MaxDimension,
		Format:       p.Format,
		JPEGQuality:  p.Quality,
	}
}

// Names lists the built-in profile names.
func Names() []string {
	return []string{"default", "web", "archive"}
}
