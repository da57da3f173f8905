package bootstrap

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"flightdb/pkg/model"
)

const (
	PlacesFixture   = "places.yaml"
	WeekDaysFixture = "weekdays.yaml"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

// Seed is the static data inserted into empty collections.
type Seed struct {
	Places   []model.Place   `yaml:"places"`
	WeekDays []model.WeekDay `yaml:"weekdays"`
}

// LoadSeed reads the embedded fixtures. A fixture file present in overrideDir
// replaces its embedded counterpart; an empty overrideDir uses only embedded data.
func LoadSeed(overrideDir string) (*Seed, error) {
	var placesDoc struct {
		Places []model.Place `yaml:"places"`
	}
	if err := readFixture(overrideDir, PlacesFixture, &placesDoc); err != nil {
		return nil, err
	}

	var weekDoc struct {
		WeekDays []model.WeekDay `yaml:"weekdays"`
	}
	if err := readFixture(overrideDir, WeekDaysFixture, &weekDoc); err != nil {
		return nil, err
	}

	seed := &Seed{Places: placesDoc.Places, WeekDays: weekDoc.WeekDays}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return seed, nil
}

// DefaultSeed returns the embedded fixtures. They are validated by tests, so a
// failure here is a build defect.
func DefaultSeed() *Seed {
	seed, err := LoadSeed("")
	if err != nil {
		panic(err)
	}
	return seed
}

func readFixture(overrideDir, name string, out any) error {
	data, err := fixtureBytes(overrideDir, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSeed, name, err)
	}
	return nil
}

func fixtureBytes(overrideDir, name string) ([]byte, error) {
	if overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(overrideDir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}
	}
	return fixtures.ReadFile("fixtures/" + name)
}

// Validate checks every record's field rules and the uniqueness of codes and day numbers.
func (s *Seed) Validate() error {
	validate := validator.New()

	codes := make(map[string]struct{}, len(s.Places))
	for i, place := range s.Places {
		if err := validate.Struct(place); err != nil {
			return fmt.Errorf("%w: place %d (%s): %v", ErrInvalidSeed, i, place.Code, err)
		}
		if _, dup := codes[place.Code]; dup {
			return fmt.Errorf("%w: duplicate place code %s", ErrInvalidSeed, place.Code)
		}
		codes[place.Code] = struct{}{}
	}

	numbers := make(map[int]struct{}, len(s.WeekDays))
	for i, day := range s.WeekDays {
		if err := validate.Struct(day); err != nil {
			return fmt.Errorf("%w: weekday %d (%s): %v", ErrInvalidSeed, i, day.Name, err)
		}
		if _, dup := numbers[day.Number]; dup {
			return fmt.Errorf("%w: duplicate weekday number %d", ErrInvalidSeed, day.Number)
		}
		numbers[day.Number] = struct{}{}
	}

	return nil
}

func (s *Seed) placeDocs() []any {
	docs := make([]any, 0, len(s.Places))
	for _, place := range s.Places {
		docs = append(docs, place)
	}
	return docs
}

func (s *Seed) weekDayDocs() []any {
	docs := make([]any, 0, len(s.WeekDays))
	for _, day := range s.WeekDays {
		docs = append(docs, day)
	}
	return docs
}
