package runtimeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
)

// FullBuild includes every article and needs no configuration file.
const FullBuild = "full"

// FeatureBuildSheet asks for build_sheet.json. Named builds without a
// features list get one too.
const FeatureBuildSheet = "build-sheet"

var (
	ErrBuildNotFound = errors.New("talorgan config: build configuration not found")
	ErrBuildInvalid  = errors.New("talorgan config: build configuration invalid")
)

// BuildConfiguration selects the articles of one named build.
type BuildConfiguration struct {
	Name string `json:"-"`
	// Members are the article ids compiled by the build.
	Members []string `json:"members"`
	// AllArticles lists every known article id. When empty it is derived from
	// the source tree.
	AllArticles []string `json:"allArticles"`
	Features    []string `json:"features"`
}

// IsFull reports whether the build includes everything.
func (b BuildConfiguration) IsFull() bool {
	return b.Name == FullBuild
}

// HasFeature reports whether the build enables the named feature.
func (b BuildConfiguration) HasFeature(name string) bool {
	return lo.Contains(b.Features, name)
}

// Validate checks that ids are non-empty.
func (b BuildConfiguration) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Members, validation.Each(validation.Required)),
		validation.Field(&b.AllArticles, validation.Each(validation.Required)),
	)
}

// BuildPath is where the configuration of build name lives under dataDir.
func BuildPath(dataDir, name string) string {
	return path.Join(dataDir, "builds", name+".json")
}

// LoadBuild returns the configuration of build name. The full build is
// synthesised.
func LoadBuild(fsys fs.FS, dataDir, name string) (BuildConfiguration, error) {
	if name == "" || name == FullBuild {
		return BuildConfiguration{Name: FullBuild}, nil
	}
	raw, err := fs.ReadFile(fsys, BuildPath(dataDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return BuildConfiguration{}, fmt.Errorf("%w: there is no build called '%s'", ErrBuildNotFound, name)
	}
	if err != nil {
		return BuildConfiguration{}, err
	}
	var build BuildConfiguration
	if err := json.Unmarshal(raw, &build); err != nil {
		return BuildConfiguration{}, fmt.Errorf("%w: %s: %v", ErrBuildInvalid, name, err)
	}
	build.Name = name
	if err := build.Validate(); err != nil {
		return BuildConfiguration{}, fmt.Errorf("%w: %s: %v", ErrBuildInvalid, name, err)
	}
	return build, nil
}
