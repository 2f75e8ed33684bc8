package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayClassesTable(t *testing.T) {
	assert.Equal(t, 78, DisplayClasses.Len())

	for id := 0; id <= 79; id++ {
		if id == 29 || id == 30 {
			assert.False(t, DisplayClasses.Contains(id), "class %d must be absent", id)
			continue
		}
		name, ok := DisplayClasses.Lookup(id)
		assert.True(t, ok, "class %d must be present", id)
		assert.NotEmpty(t, name)
	}

	name, ok := DisplayClasses.Lookup(100)
	assert.False(t, ok)
	assert.Empty(t, name)

	_, ok = DisplayClasses.Lookup(-1)
	assert.False(t, ok)
}

func TestOutputClassSetIsReadOnly(t *testing.T) {
	set := NewOutputClassSet(OutputClass{1, "a"}, OutputClass{2, "b"}, OutputClass{1, "c"})
	require.Equal(t, 2, set.Len())

	name, _ := set.Lookup(1)
	assert.Equal(t, "c", name)

	classes := set.Classes()
	classes[0].Name = "mutated"
	name, _ = set.Lookup(1)
	assert.Equal(t, "c", name)
	assert.Equal(t, "c", set.Classes()[0].Name)
}

func TestClassifyCategories(t *testing.T) {
	c := DefaultClassifier()

	expected := func(id int) Category {
		switch {
		case id == 0:
			return CategoryPerson
		case id >= 14 && id <= 23:
			return CategoryAnimal
		case id >= 1 && id <= 8:
			return CategoryVehicle
		case id >= 46 && id <= 55:
			return CategoryFood
		case id >= 62 && id <= 67:
			return CategoryElectronics
		default:
			return CategoryOther
		}
	}

	for _, class := range DisplayClasses.Classes() {
		got, ok := c.Classify(class.Index, 0.5)
		require.True(t, ok, "class %d", class.Index)
		assert.Equal(t, expected(class.Index), got.Category, "class %d (%s)", class.Index, class.Name)
		assert.Equal(t, class.Name, got.Name)
	}
}

func TestClassifyTotality(t *testing.T) {
	c := DefaultClassifier()

	for id := -5; id < 200; id++ {
		for _, conf := range []float32{0, 0.4, 0.731, 1} {
			_, ok := c.Classify(id, conf)
			assert.Equal(t, DisplayClasses.Contains(id), ok, "class %d", id)
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		classID  int
		conf     float32
		label    string
		category Category
		ok       bool
	}{
		{name: "car", classID: 2, conf: 0.73, label: "Car 0.73", category: CategoryVehicle, ok: true},
		{name: "person", classID: 0, conf: 0.4, label: "Person 0.40", category: CategoryPerson, ok: true},
		{name: "giraffe upper bound", classID: 23, conf: 0.999, label: "Giraffe 1.00", category: CategoryAnimal, ok: true},
		{name: "cake", classID: 55, conf: 0.5, label: "Cake 0.50", category: CategoryFood, ok: true},
		{name: "cell phone", classID: 67, conf: 0.91, label: "Cell phone 0.91", category: CategoryElectronics, ok: true},
		{name: "bench", classID: 13, conf: 0.66, label: "Bench 0.66", category: CategoryOther, ok: true},
		{name: "unused frisbee slot", classID: 29, conf: 0.9, ok: false},
		{name: "unused skis slot", classID: 30, conf: 0.9, ok: false},
		{name: "unknown", classID: 100, conf: 0.9, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(tt.classID, tt.conf)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, Classification{}, got)
				return
			}
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestCategoryRulesFirstMatchWins(t *testing.T) {
	overlapping := []CategoryRule{
		{Category: CategoryFood, Match: between(0, 10)},
		{Category: CategoryVehicle, Match: between(5, 20)},
	}
	c := NewClassifier(DisplayClasses, overlapping)

	assert.Equal(t, CategoryFood, c.CategoryOf(7))
	assert.Equal(t, CategoryVehicle, c.CategoryOf(15))
	assert.Equal(t, CategoryOther, c.CategoryOf(40))
}

func TestCategoryString(t *testing.T) {
	names := map[string]bool{}
	for _, category := range Categories {
		names[category.String()] = true
	}
	assert.Len(t, names, len(Categories))
	assert.Equal(t, "other", Category(99).String())
}
