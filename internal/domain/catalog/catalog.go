// Package catalog is the static exercise reference table. The data is compiled
// into the binary and never changes at runtime, so every function here is safe
// for concurrent use.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	CategoryChest     Category = "Chest"
	CategoryBack      Category = "Back"
	CategoryShoulders Category = "Shoulders"
	CategoryBiceps    Category = "Biceps"
	CategoryTriceps   Category = "Triceps"
	CategoryLegs      Category = "Legs"
	CategoryCore      Category = "Core"
	CategoryFullBody  Category = "Full Body"
	CategoryCardio    Category = "Cardio"
)

var categories = []Category{
	CategoryChest,
	CategoryBack,
	CategoryShoulders,
	CategoryBiceps,
	CategoryTriceps,
	CategoryLegs,
	CategoryCore,
	CategoryFullBody,
	CategoryCardio,
}

type Exercise struct {
	ID                string   `yaml:"id" json:"id"`
	Name              string   `yaml:"name" json:"name"`
	Category          Category `yaml:"category" json:"category"`
	MuscleGroup       string   `yaml:"muscle_group" json:"muscle_group"`
	Equipment         string   `yaml:"equipment" json:"equipment"`
	CaloriesPerMinute float64  `yaml:"calories_per_minute" json:"calories_per_minute"`
}

//go:embed exercises.yaml
var exercisesYAML []byte

type table struct {
	exercises  []Exercise
	byID       map[string]int
	byCategory map[Category][]int
}

var load = sync.OnceValue(func() *table {
	t, err := parse(exercisesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return t
})

func parse(data []byte) (*table, error) {
	var doc struct {
		Exercises []Exercise `yaml:"exercises"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}

	known := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		known[c] = struct{}{}
	}

	t := &table{
		exercises:  doc.Exercises,
		byID:       make(map[string]int, len(doc.Exercises)),
		byCategory: make(map[Category][]int, len(categories)),
	}
	for i, ex := range doc.Exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise #%d has no id", i)
		}
		if _, dup := t.byID[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		if _, ok := known[ex.Category]; !ok {
			return nil, fmt.Errorf("exercise %q has unknown category %q", ex.ID, ex.Category)
		}
		if ex.CaloriesPerMinute <= 0 {
			return nil, fmt.Errorf("exercise %q has non-positive calorie rate", ex.ID)
		}
		t.byID[ex.ID] = i
		t.byCategory[ex.Category] = append(t.byCategory[ex.Category], i)
	}
	return t, nil
}

// Lookup returns the exercise with the given id.
func Lookup(id string) (Exercise, bool) {
	t := load()
	i, ok := t.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return t.exercises[i], true
}

// ByCategory returns the exercises of a category in catalog order.
func ByCategory(category Category) []Exercise {
	t := load()
	idx := t.byCategory[category]
	result := make([]Exercise, 0, len(idx))
	for _, i := range idx {
		result = append(result, t.exercises[i])
	}
	return result
}

func Categories() []Category {
	result := make([]Category, len(categories))
	copy(result, categories)
	return result
}

func All() []Exercise {
	t := load()
	result := make([]Exercise, len(t.exercises))
	copy(result, t.exercises)
	return result
}
